package driver

import (
	"database/sql"
	"os"

	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/sirupsen/logrus"
)

var db *sql.DB

// ConnectDB opens the process-wide database handle. It is called once at
// startup; the handle is shared by every request and closed at shutdown.
func ConnectDB() *sql.DB {
	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		logrus.Fatal("DATABASE_DSN variable is not set")
	}

	var err error
	db, err = sql.Open("mysql", dsn)
	if err != nil {
		logrus.WithError(err).Fatal("failed to open database connection")
	}
	if err := db.Ping(); err != nil {
		logrus.WithError(err).Fatal("failed to reach database")
	}
	return db
}

// RunMigrations applies the schema migrations. The unique keys they declare
// back the one-vote-per-user and one-link-per-pair invariants.
func RunMigrations(db *sql.DB) {
	path := os.Getenv("MIGRATIONS_PATH")
	if path == "" {
		path = "file://migrations"
	}

	instance, err := mysql.WithInstance(db, &mysql.Config{})
	if err != nil {
		logrus.WithError(err).Fatal("failed to init migration driver")
	}

	m, err := migrate.NewWithDatabaseInstance(path, "mysql", instance)
	if err != nil {
		logrus.WithError(err).Fatal("failed to init migrations")
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		logrus.WithError(err).Fatal("failed to apply migrations")
	}
}
