package controllers

import (
	"database/sql"
	"errors"

	"ranking-uni/models"

	"github.com/go-sql-driver/mysql"
)

const mysqlDuplicateEntry = 1062

// ResolveCourseID resolves a review's course reference to a canonical course
// id. A caller-supplied id is returned unchanged without an existence check.
// A new course name is matched exactly against the university's courses and
// reused when found, otherwise a new course row is created. With neither, the
// review carries no course.
func ResolveCourseID(db *sql.DB, courseID int, newCourseName string, universityID int) (sql.NullInt64, error) {
	if courseID > 0 {
		return sql.NullInt64{Int64: int64(courseID), Valid: true}, nil
	}

	if newCourseName == "" {
		return sql.NullInt64{}, nil
	}

	if universityID <= 0 {
		return sql.NullInt64{}, models.NewValidationError("university_id is required to create a course")
	}

	// BINARY keeps the match exact; casing variants create distinct courses.
	var existingID int64
	err := db.QueryRow(
		"SELECT id FROM courses WHERE university_id = ? AND BINARY name = ? LIMIT 1",
		universityID, newCourseName,
	).Scan(&existingID)
	if err == nil {
		return sql.NullInt64{Int64: existingID, Valid: true}, nil
	}
	if err != sql.ErrNoRows {
		return sql.NullInt64{}, models.WrapStore(err, "look up course by name")
	}

	result, err := db.Exec(
		"INSERT INTO courses (name, university_id) VALUES (?, ?)",
		newCourseName, universityID,
	)
	if err != nil {
		return sql.NullInt64{}, models.WrapStore(err, "create course")
	}

	createdID, err := result.LastInsertId()
	if err != nil {
		return sql.NullInt64{}, models.WrapStore(err, "read created course id")
	}
	return sql.NullInt64{Int64: createdID, Valid: true}, nil
}

// EnsureProfessorCourse guarantees exactly one association row per
// (professor_id, course_id) pair. The check-then-insert window is closed by
// the unique key on the table; losing that race is treated as success.
func EnsureProfessorCourse(db *sql.DB, professorID, courseID int) error {
	var exists bool
	err := db.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM professor_courses WHERE professor_id = ? AND course_id = ?)",
		professorID, courseID,
	).Scan(&exists)
	if err != nil {
		return models.WrapStore(err, "check professor course link")
	}
	if exists {
		return nil
	}

	_, err = db.Exec(
		"INSERT INTO professor_courses (professor_id, course_id) VALUES (?, ?)",
		professorID, courseID,
	)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return nil
		}
		return models.WrapStore(err, "create professor course link")
	}
	return nil
}
