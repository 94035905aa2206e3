package models

import "database/sql"

// Review represents a student's review of a professor, optionally tied to a course.
// UserID is set from the resolved session, never from the request body.
type Review struct {
	ID             int            `json:"id"`
	UserID         int            `json:"user_id"`
	ProfessorID    int            `json:"professor_id"`
	CourseID       sql.NullInt64  `json:"course_id"`
	Comment        sql.NullString `json:"comment"`
	Difficulty     float64        `json:"difficulty"`
	Quality        float64        `json:"quality"`
	WouldRecommend bool           `json:"would_recommend"`
	CreatedAt      sql.NullString `json:"created_at"`
}

// ReviewWithVotes is the listing shape carrying derived vote tallies.
type ReviewWithVotes struct {
	ID             int     `json:"id"`
	ProfessorID    int     `json:"professor_id"`
	CourseID       int     `json:"course_id,omitempty"`
	Comment        string  `json:"comment,omitempty"`
	Difficulty     float64 `json:"difficulty"`
	Quality        float64 `json:"quality"`
	WouldRecommend bool    `json:"would_recommend"`
	CreatedAt      string  `json:"created_at"`
	Upvotes        int     `json:"upvotes"`
	Downvotes      int     `json:"downvotes"`
}
