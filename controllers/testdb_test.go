package controllers

import (
	"database/sql"
	"os"
	"strconv"
	"sync"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/go-sql-driver/mysql"
)

var (
	dbOnce sync.Once
	db     *sql.DB
	dbErr  error
)

// testDB opens the shared test database, applying migrations once. Tests
// needing the store are skipped unless TEST_MYSQL_DSN is set.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("TEST_MYSQL_DSN")
	if dsn == "" {
		t.Skip("set TEST_MYSQL_DSN to run database-backed tests")
	}

	dbOnce.Do(func() {
		db, dbErr = sql.Open("mysql", dsn)
		if dbErr != nil {
			return
		}
		if dbErr = db.Ping(); dbErr != nil {
			return
		}

		driver, err := migratemysql.WithInstance(db, &migratemysql.Config{})
		if err != nil {
			dbErr = err
			return
		}
		m, err := migrate.NewWithDatabaseInstance("file://../migrations", "mysql", driver)
		if err != nil {
			dbErr = err
			return
		}
		if err := m.Up(); err != nil && err != migrate.ErrNoChange {
			dbErr = err
		}
	})
	if dbErr != nil {
		t.Fatalf("failed to init test db: %v", dbErr)
	}

	cleanTables(t, db)
	return db
}

// cleanTables empties every collection in foreign-key order.
func cleanTables(t *testing.T, db *sql.DB) {
	t.Helper()
	for _, table := range []string{
		"review_votes", "reviews", "professor_courses", "professors",
		"courses", "universities", "users",
	} {
		if _, err := db.Exec("DELETE FROM " + table); err != nil {
			t.Fatalf("failed to clean table %s: %v", table, err)
		}
	}
}

func seedUser(t *testing.T, db *sql.DB, email string) int {
	t.Helper()
	result, err := db.Exec(
		"INSERT INTO users (email, password) VALUES (?, ?)", email, "x")
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	id, _ := result.LastInsertId()
	return int(id)
}

func seedUniversity(t *testing.T, db *sql.DB, name, slug string) int {
	t.Helper()
	result, err := db.Exec(
		"INSERT INTO universities (name, slug) VALUES (?, ?)", name, slug)
	if err != nil {
		t.Fatalf("failed to seed university: %v", err)
	}
	id, _ := result.LastInsertId()
	return int(id)
}

func seedCourse(t *testing.T, db *sql.DB, name string, universityID int) int {
	t.Helper()
	result, err := db.Exec(
		"INSERT INTO courses (name, university_id) VALUES (?, ?)", name, universityID)
	if err != nil {
		t.Fatalf("failed to seed course: %v", err)
	}
	id, _ := result.LastInsertId()
	return int(id)
}

func seedProfessor(t *testing.T, db *sql.DB, name, department string, universityID int) int {
	t.Helper()
	result, err := db.Exec(
		"INSERT INTO professors (name, department, university_id) VALUES (?, ?, ?)",
		name, sql.NullString{String: department, Valid: department != ""}, universityID)
	if err != nil {
		t.Fatalf("failed to seed professor: %v", err)
	}
	id, _ := result.LastInsertId()
	return int(id)
}

func seedReview(t *testing.T, db *sql.DB, userID, professorID, courseID int, quality float64) int {
	t.Helper()
	result, err := db.Exec(
		"INSERT INTO reviews (user_id, professor_id, course_id, difficulty, quality, would_recommend) VALUES (?, ?, ?, 3, ?, TRUE)",
		userID, professorID, sql.NullInt64{Int64: int64(courseID), Valid: courseID > 0}, quality)
	if err != nil {
		t.Fatalf("failed to seed review: %v", err)
	}
	id, _ := result.LastInsertId()
	return int(id)
}

func seedLink(t *testing.T, db *sql.DB, professorID, courseID int) {
	t.Helper()
	if _, err := db.Exec(
		"INSERT INTO professor_courses (professor_id, course_id) VALUES (?, ?)",
		professorID, courseID); err != nil {
		t.Fatalf("failed to seed professor course link: %v", err)
	}
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func countRows(t *testing.T, db *sql.DB, query string, args ...interface{}) int {
	t.Helper()
	var count int
	if err := db.QueryRow(query, args...).Scan(&count); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	return count
}
