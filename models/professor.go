package models

import "database/sql"

// Professor represents a professor. Department is free text and may be empty.
type Professor struct {
	ID           int            `json:"id"`
	Name         string         `json:"name"`
	Department   sql.NullString `json:"department"`
	UniversityID int            `json:"university_id"`
	CampusID     sql.NullInt64  `json:"campus_id"`
}

// ProfessorSummary is the listing shape with the derived review count.
type ProfessorSummary struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Department  string `json:"department"`
	ReviewCount int    `json:"review_count"`
}

// ProfessorPage is a paginated professor listing.
type ProfessorPage struct {
	Data       []ProfessorSummary `json:"data"`
	Pagination Pagination         `json:"pagination"`
}

// Pagination carries offset-based paging metadata.
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}
