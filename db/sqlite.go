// Package db provides the SQLite store for the name corpus and the training
// history.
package db

import (
	"database/sql"
	"errors"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

var database *sql.DB

// InitDB opens the SQLite database and creates the schema.
func InitDB(path string) error {
	var err error
	database, err = sql.Open("sqlite3", path)
	if err != nil {
		return err
	}

	query := `
    CREATE TABLE IF NOT EXISTS names (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        text TEXT NOT NULL,
        language VARCHAR(8) NOT NULL,
        gender VARCHAR(8) NOT NULL,
        created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
        UNIQUE(text, language, gender)
    );
    CREATE INDEX IF NOT EXISTS idx_names_gender ON names(gender);
    CREATE TABLE IF NOT EXISTS training_log (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        gender VARCHAR(8) NOT NULL,
        classes INTEGER NOT NULL,
        examples INTEGER NOT NULL,
        vocab_size INTEGER NOT NULL,
        trained_at DATETIME NOT NULL
    );
    `
	_, err = database.Exec(query)
	return err
}

// CloseDB closes the database handle.
func CloseDB() error {
	if database == nil {
		return nil
	}
	err := database.Close()
	database = nil
	return err
}

// NameRow is one stored corpus entry.
type NameRow struct {
	Text     string
	Language string
	Gender   string
}

// InsertNames stores rows in a single transaction, ignoring duplicates.
// Returns the number of newly inserted rows.
func InsertNames(rows []NameRow) (int, error) {
	if database == nil {
		return 0, errors.New("database not initialized")
	}

	tx, err := database.Begin()
	if err != nil {
		return 0, err
	}
	stmt, err := tx.Prepare(`INSERT OR IGNORE INTO names (text, language, gender) VALUES (?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return 0, err
	}
	defer stmt.Close()

	inserted := 0
	for _, row := range rows {
		result, err := stmt.Exec(row.Text, row.Language, row.Gender)
		if err != nil {
			tx.Rollback()
			return 0, err
		}
		if n, _ := result.RowsAffected(); n > 0 {
			inserted++
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

// NamesByGender returns every stored name for a gender in a deterministic
// order, so repeated training runs see an identical corpus.
func NamesByGender(gender string) ([]NameRow, error) {
	if database == nil {
		return nil, errors.New("database not initialized")
	}

	rows, err := database.Query(
		`SELECT text, language, gender FROM names WHERE gender = ? ORDER BY language, text`, gender)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []NameRow
	for rows.Next() {
		var row NameRow
		if err := rows.Scan(&row.Text, &row.Language, &row.Gender); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// LogTraining appends one training run record.
func LogTraining(gender string, classes, examples, vocabSize int) error {
	if database == nil {
		return errors.New("database not initialized")
	}
	_, err := database.Exec(
		`INSERT INTO training_log (gender, classes, examples, vocab_size, trained_at) VALUES (?, ?, ?, ?, ?)`,
		gender, classes, examples, vocabSize, time.Now())
	return err
}
