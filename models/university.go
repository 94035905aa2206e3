package models

import "database/sql"

// University represents a university.
type University struct {
	ID        int            `json:"id"`
	Name      string         `json:"name"`
	Slug      string         `json:"slug"`
	PhotoURL  sql.NullString `json:"photo_url"`
	CreatedAt sql.NullString `json:"created_at"`
}

// UniversityStat is the per-university rollup returned by GET /universities.
type UniversityStat struct {
	ID              int     `json:"id"`
	Name            string  `json:"name"`
	Slug            string  `json:"slug"`
	AvgRating       float64 `json:"avg_rating"`
	ReviewCount     int     `json:"review_count"`
	ProfessorCount  int     `json:"professor_count"`
	DepartmentCount int     `json:"department_count"`
}
