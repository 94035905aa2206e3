package models

import "database/sql"

// Course represents a course taught at a university.
type Course struct {
	ID           int            `json:"id"`
	Name         string         `json:"name"`
	Code         sql.NullString `json:"code"`
	Semester     sql.NullString `json:"semester"`
	UniversityID int            `json:"university_id"`
}

// CourseWithProfessors is the catalog entry returned by GET /courses.
type CourseWithProfessors struct {
	ID         int                `json:"id"`
	Name       string             `json:"name"`
	Code       string             `json:"code,omitempty"`
	Semester   string             `json:"semester,omitempty"`
	Professors []ProfessorSummary `json:"professors"`
}

// CourseSuggestion is a live-typing search hit.
type CourseSuggestion struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
