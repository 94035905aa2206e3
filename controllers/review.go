package controllers

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"ranking-uni/models"
	"ranking-uni/utils"

	"github.com/sirupsen/logrus"
)

type ReviewController struct{}

type reviewPayload struct {
	ProfessorID    int
	CourseID       int
	NewCourseName  string
	UniversityID   int
	Comment        string
	Difficulty     float64
	Quality        float64
	WouldRecommend bool
}

// decodeCheckbox leniently decodes a boolean-like form token. HTML checkboxes
// submit "on"; scripted clients send "true". Anything else is false.
func decodeCheckbox(raw string) bool {
	return raw == "on" || raw == "true"
}

// parseReviewForm validates the submission in order: professor_id first, then
// the numeric ratings. Each failure is a ValidationError before any store
// access.
func parseReviewForm(r *http.Request) (reviewPayload, error) {
	var payload reviewPayload

	if err := r.ParseForm(); err != nil {
		return payload, models.NewValidationError("invalid form body")
	}

	professorID, err := utils.StrToInt(r.FormValue("professor_id"))
	if err != nil || professorID <= 0 {
		return payload, models.NewValidationError("professor_id is required")
	}
	payload.ProfessorID = professorID

	difficulty, derr := strconv.ParseFloat(r.FormValue("difficulty"), 64)
	quality, qerr := strconv.ParseFloat(r.FormValue("quality"), 64)
	if derr != nil || qerr != nil ||
		math.IsNaN(difficulty) || math.IsInf(difficulty, 0) ||
		math.IsNaN(quality) || math.IsInf(quality, 0) {
		return payload, models.NewValidationError("difficulty and quality must be numeric")
	}
	payload.Difficulty = difficulty
	payload.Quality = quality

	if raw := r.FormValue("course_id"); raw != "" {
		if payload.CourseID, err = utils.StrToInt(raw); err != nil {
			return payload, models.NewValidationError("course_id must be numeric")
		}
	}
	if raw := r.FormValue("university_id"); raw != "" {
		if payload.UniversityID, err = utils.StrToInt(raw); err != nil {
			return payload, models.NewValidationError("university_id must be numeric")
		}
	}
	payload.NewCourseName = r.FormValue("new_course_name")
	payload.Comment = r.FormValue("comment")
	payload.WouldRecommend = decodeCheckbox(r.FormValue("would_recommend"))

	return payload, nil
}

// CreateReview is the submission pipeline: validate, resolve identity,
// resolve course linkage, persist the review, ensure the professor-course
// link, redirect to the professor page. The review is not rolled back when
// the link step fails afterwards.
func (rc *ReviewController) CreateReview(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := parseReviewForm(r)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: err.Error()})
			return
		}

		userID, err := ResolveSession(r)
		if err != nil {
			ClearSessionCookies(w)
			http.Redirect(w, r, "/signin", http.StatusSeeOther)
			return
		}

		courseID, err := ResolveCourseID(db, payload.CourseID, payload.NewCourseName, payload.UniversityID)
		if err != nil {
			var validationErr *models.ValidationError
			if errors.As(err, &validationErr) {
				utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: err.Error()})
				return
			}
			logrus.WithError(err).Error("failed to resolve course")
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: err.Error()})
			return
		}

		comment := sql.NullString{String: payload.Comment, Valid: payload.Comment != ""}
		_, err = db.Exec(
			"INSERT INTO reviews (user_id, professor_id, course_id, comment, difficulty, quality, would_recommend) VALUES (?, ?, ?, ?, ?, ?, ?)",
			userID, payload.ProfessorID, courseID, comment, payload.Difficulty, payload.Quality, payload.WouldRecommend,
		)
		if err != nil {
			logrus.WithError(err).Error("failed to insert review")
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: err.Error()})
			return
		}

		if courseID.Valid {
			if err := EnsureProfessorCourse(db, payload.ProfessorID, int(courseID.Int64)); err != nil {
				logrus.WithError(err).Error("failed to link professor to course")
				utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: err.Error()})
				return
			}
		}

		http.Redirect(w, r, fmt.Sprintf("/professor/%d", payload.ProfessorID), http.StatusSeeOther)
	}
}

// GetReviews lists a professor's reviews with their vote tallies.
func (rc *ReviewController) GetReviews(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		professorID, err := utils.StrToInt(r.URL.Query().Get("professor_id"))
		if err != nil || professorID <= 0 {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "professor_id is required"})
			return
		}

		query := `
			SELECT r.id, r.professor_id, COALESCE(r.course_id, 0), COALESCE(r.comment, ''),
				r.difficulty, r.quality, r.would_recommend, COALESCE(r.created_at, ''),
				COALESCE(v.upvotes, 0), COALESCE(v.downvotes, 0)
			FROM reviews r
			LEFT JOIN (
				SELECT review_id,
					SUM(vote = 1) AS upvotes,
					SUM(vote = -1) AS downvotes
				FROM review_votes
				GROUP BY review_id
			) v ON v.review_id = r.id
			WHERE r.professor_id = ?
			ORDER BY r.created_at DESC`
		rows, err := db.Query(query, professorID)
		if err != nil {
			logrus.WithError(err).Error("failed to get reviews")
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to get reviews"})
			return
		}
		defer rows.Close()

		reviews := []models.ReviewWithVotes{}
		for rows.Next() {
			var review models.ReviewWithVotes
			err := rows.Scan(&review.ID, &review.ProfessorID, &review.CourseID, &review.Comment,
				&review.Difficulty, &review.Quality, &review.WouldRecommend, &review.CreatedAt,
				&review.Upvotes, &review.Downvotes)
			if err != nil {
				logrus.WithError(err).Error("failed to scan review row")
				utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to parse reviews"})
				return
			}
			reviews = append(reviews, review)
		}
		if err := rows.Err(); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Error processing reviews"})
			return
		}

		utils.ResponseJSON(w, reviews)
	}
}
