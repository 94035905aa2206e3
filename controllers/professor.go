package controllers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"ranking-uni/models"
	"ranking-uni/utils"

	"github.com/sirupsen/logrus"
)

type ProfessorController struct{}

const defaultPageSize = 20

// parsePagination clamps page and limit to at least 1, with the default page
// size when limit is absent or malformed.
func parsePagination(pageStr, limitStr string) (page, limit int) {
	page, err := utils.StrToInt(pageStr)
	if err != nil || page < 1 {
		page = 1
	}
	limit, err = utils.StrToInt(limitStr)
	if err != nil || limit < 1 {
		limit = defaultPageSize
	}
	return page, limit
}

// collectIDs runs a query whose rows are single int ids.
func collectIDs(db *sql.DB, query string, args ...interface{}) ([]int, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, models.WrapStore(err, "collect ids")
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, models.WrapStore(err, "scan id")
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

// GetProfessors lists a university's professors with derived review counts,
// ordered by review count descending then name, with offset pagination.
// A text search matches professor names OR professors linked to a matching
// course; a direct course_id restricts the page to that course's professors.
func (pc *ProfessorController) GetProfessors(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := r.URL.Query()

		universityID, err := utils.StrToInt(params.Get("university_id"))
		if err != nil || universityID <= 0 {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "university_id is required"})
			return
		}

		page, limit := parsePagination(params.Get("page"), params.Get("limit"))
		search := strings.TrimSpace(params.Get("search"))

		conditions := []string{"p.university_id = ?"}
		args := []interface{}{universityID}

		if campusID, err := utils.StrToInt(params.Get("campus_id")); err == nil && campusID > 0 {
			conditions = append(conditions, "p.campus_id = ?")
			args = append(args, campusID)
		}

		if search != "" {
			// Professors teaching a course whose name matches widen the
			// search beyond professor names.
			linkedIDs, err := collectIDs(db, `
				SELECT DISTINCT pc.professor_id
				FROM professor_courses pc
				JOIN courses c ON c.id = pc.course_id
				WHERE c.university_id = ? AND c.name LIKE ?`,
				universityID, "%"+search+"%")
			if err != nil {
				logrus.WithError(err).Error("course-linked professor lookup failed")
				utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: err.Error()})
				return
			}

			if len(linkedIDs) > 0 {
				condition := fmt.Sprintf("(p.name LIKE ? OR p.id IN (%s))", placeholders(len(linkedIDs)))
				conditions = append(conditions, condition)
				args = append(args, "%"+search+"%")
				for _, id := range linkedIDs {
					args = append(args, id)
				}
			} else {
				conditions = append(conditions, "p.name LIKE ?")
				args = append(args, "%"+search+"%")
			}
		}

		if courseID, err := utils.StrToInt(params.Get("course_id")); err == nil && courseID > 0 {
			courseProfIDs, err := collectIDs(db,
				"SELECT professor_id FROM professor_courses WHERE course_id = ?", courseID)
			if err != nil {
				logrus.WithError(err).Error("course professor lookup failed")
				utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: err.Error()})
				return
			}

			if len(courseProfIDs) > 0 {
				conditions = append(conditions, fmt.Sprintf("p.id IN (%s)", placeholders(len(courseProfIDs))))
				for _, id := range courseProfIDs {
					args = append(args, id)
				}
			} else {
				// No professor teaches this course: force an empty page
				// instead of an unfiltered one.
				conditions = append(conditions, "p.id = 0")
			}
		}

		where := strings.Join(conditions, " AND ")

		var total int
		countQuery := "SELECT COUNT(*) FROM professors p WHERE " + where
		if err := db.QueryRow(countQuery, args...).Scan(&total); err != nil {
			logrus.WithError(err).Error("professor count failed")
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: err.Error()})
			return
		}

		dataQuery := `
			SELECT p.id, p.name, COALESCE(p.department, 'N/A'), COALESCE(rc.review_count, 0)
			FROM professors p
			LEFT JOIN (
				SELECT professor_id, COUNT(*) AS review_count
				FROM reviews
				GROUP BY professor_id
			) rc ON rc.professor_id = p.id
			WHERE ` + where + `
			ORDER BY COALESCE(rc.review_count, 0) DESC, p.name ASC
			LIMIT ? OFFSET ?`
		dataArgs := append(append([]interface{}{}, args...), limit, (page-1)*limit)

		rows, err := db.Query(dataQuery, dataArgs...)
		if err != nil {
			logrus.WithError(err).Error("professor listing failed")
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: err.Error()})
			return
		}
		defer rows.Close()

		professors := []models.ProfessorSummary{}
		for rows.Next() {
			var prof models.ProfessorSummary
			if err := rows.Scan(&prof.ID, &prof.Name, &prof.Department, &prof.ReviewCount); err != nil {
				utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to parse professors"})
				return
			}
			professors = append(professors, prof)
		}
		if err := rows.Err(); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Error processing professors"})
			return
		}

		totalPages := 0
		if total > 0 {
			totalPages = (total + limit - 1) / limit
		}

		utils.ResponseJSON(w, models.ProfessorPage{
			Data: professors,
			Pagination: models.Pagination{
				Total:      total,
				Page:       page,
				PageSize:   limit,
				TotalPages: totalPages,
			},
		})
	}
}

type professorSuggestion struct {
	Name         string `json:"name"`
	Department   string `json:"department"`
	UniversityID int    `json:"university_id"`
	CourseName   string `json:"course_name"`
}

// CreateProfessor accepts a professor suggestion and optionally links it to a
// course through the course linker. Link failures are logged, not fatal; the
// professor row is already committed.
func (pc *ProfessorController) CreateProfessor(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var suggestion professorSuggestion
		if err := json.NewDecoder(r.Body).Decode(&suggestion); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid request body"})
			return
		}

		if suggestion.Name == "" || suggestion.Department == "" || suggestion.UniversityID <= 0 {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "name, department and university_id are required"})
			return
		}

		result, err := db.Exec(
			"INSERT INTO professors (name, department, university_id) VALUES (?, ?, ?)",
			suggestion.Name, suggestion.Department, suggestion.UniversityID,
		)
		if err != nil {
			logrus.WithError(err).Error("failed to insert professor")
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: err.Error()})
			return
		}

		professorID, err := result.LastInsertId()
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Professor created but failed to retrieve ID"})
			return
		}

		if suggestion.CourseName != "" {
			courseID, err := ResolveCourseID(db, 0, suggestion.CourseName, suggestion.UniversityID)
			if err != nil {
				logrus.WithError(err).Error("failed to resolve suggested course")
			} else if courseID.Valid {
				if err := EnsureProfessorCourse(db, int(professorID), int(courseID.Int64)); err != nil {
					logrus.WithError(err).Error("failed to link suggested course")
				}
			}
		}

		w.WriteHeader(http.StatusCreated)
		utils.ResponseJSON(w, map[string]interface{}{
			"message":      "Professor suggested",
			"professor_id": professorID,
		})
	}
}
