package main

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun(t *testing.T) {
	orig := runFunc
	defer func() { runFunc = orig }()

	t.Run("MissingURL", func(t *testing.T) {
		assert.EqualError(t, run("", "up"), "DB_URL not set in environment")
	})

	t.Run("PassesMode", func(t *testing.T) {
		var gotMode string
		runFunc = func(db *sql.DB, mode string) error {
			assert.NotNil(t, db)
			gotMode = mode
			return nil
		}

		assert.NoError(t, run("postgres://u:p@localhost:5432/shop?sslmode=disable", "down"))
		assert.Equal(t, "down", gotMode)
	})

	t.Run("PropagatesError", func(t *testing.T) {
		runFunc = func(*sql.DB, string) error { return errors.New("dirty database version 2") }

		err := run("postgres://u:p@localhost:5432/shop?sslmode=disable", "up")
		assert.EqualError(t, err, "dirty database version 2")
	})
}
