package controllers

import (
	"database/sql"
	"net/http"
	"path/filepath"
	"sort"
	"strings"

	"ranking-uni/models"
	"ranking-uni/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type UniversityController struct{}

// GetUniversities returns the per-university rollup: average review quality,
// review count, and unique professor and department counts across the
// university's courses. Departments are deduplicated after trimming and
// lowercasing; empty departments are ignored.
func (uc *UniversityController) GetUniversities(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := db.Query("SELECT id, name, slug FROM universities ORDER BY name ASC")
		if err != nil {
			logrus.WithError(err).Error("failed to get universities")
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: err.Error()})
			return
		}
		defer rows.Close()

		stats := []models.UniversityStat{}
		for rows.Next() {
			var stat models.UniversityStat
			if err := rows.Scan(&stat.ID, &stat.Name, &stat.Slug); err != nil {
				utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to parse universities"})
				return
			}
			stats = append(stats, stat)
		}
		if err := rows.Err(); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Error processing universities"})
			return
		}

		type ratingAgg struct {
			count int
			sum   float64
		}
		ratings := map[int]ratingAgg{}

		ratingRows, err := db.Query(`
			SELECT c.university_id, r.quality
			FROM courses c
			JOIN reviews r ON r.course_id = c.id`)
		if err != nil {
			logrus.WithError(err).Error("failed to get review ratings")
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: err.Error()})
			return
		}
		defer ratingRows.Close()
		for ratingRows.Next() {
			var universityID int
			var quality float64
			if err := ratingRows.Scan(&universityID, &quality); err != nil {
				utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to parse ratings"})
				return
			}
			agg := ratings[universityID]
			agg.count++
			agg.sum += quality
			ratings[universityID] = agg
		}
		if err := ratingRows.Err(); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Error processing ratings"})
			return
		}

		professorSets := map[int]map[int]struct{}{}
		departmentSets := map[int]map[string]struct{}{}

		professorRows, err := db.Query(`
			SELECT c.university_id, p.id, COALESCE(p.department, '')
			FROM courses c
			JOIN professor_courses pc ON pc.course_id = c.id
			JOIN professors p ON p.id = pc.professor_id`)
		if err != nil {
			logrus.WithError(err).Error("failed to get linked professors")
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: err.Error()})
			return
		}
		defer professorRows.Close()
		for professorRows.Next() {
			var universityID, professorID int
			var department string
			if err := professorRows.Scan(&universityID, &professorID, &department); err != nil {
				utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to parse professors"})
				return
			}

			if professorSets[universityID] == nil {
				professorSets[universityID] = map[int]struct{}{}
				departmentSets[universityID] = map[string]struct{}{}
			}
			professorSets[universityID][professorID] = struct{}{}

			normalized := strings.ToLower(strings.TrimSpace(department))
			if normalized != "" {
				departmentSets[universityID][normalized] = struct{}{}
			}
		}
		if err := professorRows.Err(); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Error processing professors"})
			return
		}

		for i := range stats {
			agg := ratings[stats[i].ID]
			stats[i].ReviewCount = agg.count
			if agg.count > 0 {
				stats[i].AvgRating = agg.sum / float64(agg.count)
			}
			stats[i].ProfessorCount = len(professorSets[stats[i].ID])
			stats[i].DepartmentCount = len(departmentSets[stats[i].ID])
		}

		utils.ResponseJSON(w, stats)
	}
}

// GetDepartments returns a university's distinct department names, trimmed
// and sorted.
func (uc *UniversityController) GetDepartments(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		universityID, err := utils.StrToInt(r.URL.Query().Get("university_id"))
		if err != nil || universityID <= 0 {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "university_id is required"})
			return
		}

		rows, err := db.Query(
			"SELECT COALESCE(department, '') FROM professors WHERE university_id = ?", universityID)
		if err != nil {
			logrus.WithError(err).Error("failed to get departments")
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: err.Error()})
			return
		}
		defer rows.Close()

		seen := map[string]struct{}{}
		departments := []string{}
		for rows.Next() {
			var department string
			if err := rows.Scan(&department); err != nil {
				utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to parse departments"})
				return
			}
			department = strings.TrimSpace(department)
			if department == "" {
				continue
			}
			if _, ok := seen[department]; !ok {
				seen[department] = struct{}{}
				departments = append(departments, department)
			}
		}
		if err := rows.Err(); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Error processing departments"})
			return
		}

		sort.Strings(departments)
		utils.ResponseJSON(w, departments)
	}
}

// CreateUniversity registers a university with an optional logo uploaded to
// S3.
func (uc *UniversityController) CreateUniversity(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := ResolveSession(r); err != nil {
			ClearSessionCookies(w)
			utils.RespondWithError(w, http.StatusUnauthorized, models.Error{Message: "Unauthorized"})
			return
		}

		if err := r.ParseMultipartForm(10 << 20); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid multipart form"})
			return
		}

		name := strings.TrimSpace(r.FormValue("name"))
		slug := strings.TrimSpace(r.FormValue("slug"))
		if name == "" || slug == "" {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "name and slug are required"})
			return
		}

		photoURL := sql.NullString{}
		if file, header, err := r.FormFile("photo"); err == nil {
			defer file.Close()
			fileName := uuid.New().String() + filepath.Ext(header.Filename)
			url, err := utils.UploadFileToS3(file, fileName)
			if err != nil {
				logrus.WithError(err).Error("failed to upload university photo")
				utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to upload photo"})
				return
			}
			photoURL = sql.NullString{String: url, Valid: true}
		}

		result, err := db.Exec(
			"INSERT INTO universities (name, slug, photo_url) VALUES (?, ?, ?)",
			name, slug, photoURL,
		)
		if err != nil {
			logrus.WithError(err).Error("failed to insert university")
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: err.Error()})
			return
		}

		universityID, _ := result.LastInsertId()
		w.WriteHeader(http.StatusCreated)
		utils.ResponseJSON(w, map[string]interface{}{
			"message":       "University created successfully",
			"university_id": universityID,
		})
	}
}
