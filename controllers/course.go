package controllers

import (
	"database/sql"
	"net/http"
	"strings"
	"unicode/utf8"

	"ranking-uni/models"
	"ranking-uni/utils"

	"github.com/sirupsen/logrus"
)

type CourseController struct{}

const courseSearchLimit = 5

// GetCourses returns the course catalog with the professors linked to each
// course.
func (cc *CourseController) GetCourses(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := db.Query(`
			SELECT c.id, c.name, COALESCE(c.code, ''), COALESCE(c.semester, ''),
				COALESCE(p.id, 0), COALESCE(p.name, ''), COALESCE(p.department, '')
			FROM courses c
			LEFT JOIN professor_courses pc ON pc.course_id = c.id
			LEFT JOIN professors p ON p.id = pc.professor_id
			ORDER BY c.id`)
		if err != nil {
			logrus.WithError(err).Error("failed to get courses")
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to get courses"})
			return
		}
		defer rows.Close()

		courses := []models.CourseWithProfessors{}
		index := map[int]int{}
		for rows.Next() {
			var (
				course models.CourseWithProfessors
				prof   models.ProfessorSummary
			)
			if err := rows.Scan(&course.ID, &course.Name, &course.Code, &course.Semester,
				&prof.ID, &prof.Name, &prof.Department); err != nil {
				logrus.WithError(err).Error("failed to scan course row")
				utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to parse courses"})
				return
			}

			pos, ok := index[course.ID]
			if !ok {
				course.Professors = []models.ProfessorSummary{}
				courses = append(courses, course)
				pos = len(courses) - 1
				index[course.ID] = pos
			}
			if prof.ID != 0 {
				courses[pos].Professors = append(courses[pos].Professors, prof)
			}
		}
		if err := rows.Err(); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Error processing courses"})
			return
		}

		utils.ResponseJSON(w, courses)
	}
}

// SearchCourses is the live-typing course search. The fast tier is an indexed
// LIKE limited to 5 rows; when it comes back short, a full scan of the
// university's courses re-normalizes each name in-process so stored
// diacritics cannot hide a match.
func (cc *CourseController) SearchCourses(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := utils.NormalizeText(r.URL.Query().Get("q"))
		universityID, err := utils.StrToInt(r.URL.Query().Get("university_id"))

		if utf8.RuneCountInString(query) < 2 || err != nil || universityID <= 0 {
			utils.ResponseJSON(w, []models.CourseSuggestion{})
			return
		}

		fast, err := queryCourseSuggestions(db,
			"SELECT id, name FROM courses WHERE university_id = ? AND name LIKE ? LIMIT ?",
			universityID, "%"+query+"%", courseSearchLimit)
		if err != nil {
			logrus.WithError(err).Error("course search failed")
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: err.Error()})
			return
		}
		if len(fast) >= courseSearchLimit {
			utils.ResponseJSON(w, fast)
			return
		}

		all, err := queryCourseSuggestions(db,
			"SELECT id, name FROM courses WHERE university_id = ?", universityID)
		if err != nil {
			logrus.WithError(err).Error("course search fallback failed")
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: err.Error()})
			return
		}

		matched := []models.CourseSuggestion{}
		for _, course := range all {
			if strings.Contains(utils.NormalizeText(course.Name), query) {
				matched = append(matched, course)
				if len(matched) == courseSearchLimit {
					break
				}
			}
		}

		utils.ResponseJSON(w, matched)
	}
}

func queryCourseSuggestions(db *sql.DB, query string, args ...interface{}) ([]models.CourseSuggestion, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, models.WrapStore(err, "search courses")
	}
	defer rows.Close()

	suggestions := []models.CourseSuggestion{}
	for rows.Next() {
		var suggestion models.CourseSuggestion
		if err := rows.Scan(&suggestion.ID, &suggestion.Name); err != nil {
			return nil, models.WrapStore(err, "scan course suggestion")
		}
		suggestions = append(suggestions, suggestion)
	}
	if err := rows.Err(); err != nil {
		return nil, models.WrapStore(err, "read course suggestions")
	}
	return suggestions, nil
}
