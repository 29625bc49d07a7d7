package helper

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func orderBySQL(t *testing.T, ordering string, allowed map[string]string, fallback string) string {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{DryRun: true})
	require.NoError(t, err)

	var rows []map[string]interface{}
	tx := ApplyOrdering(db.Table("media"), ordering, allowed, fallback).Find(&rows)
	return tx.Statement.SQL.String()
}

func TestApplyOrdering(t *testing.T) {
	allowed := map[string]string{"title": "title", "publication_year": "publication_year"}

	assert.Contains(t, orderBySQL(t, "title", allowed, "created_at ASC"), "ORDER BY title ASC")
	assert.Contains(t, orderBySQL(t, "-publication_year", allowed, "created_at ASC"), "ORDER BY publication_year DESC")
	assert.Contains(t, orderBySQL(t, " -title ", allowed, "created_at ASC"), "ORDER BY title DESC")
}

func TestApplyOrderingRejectsUnknownColumns(t *testing.T) {
	allowed := map[string]string{"title": "title"}

	// unknown or injected fields fall back, the input never reaches the SQL
	assert.Contains(t, orderBySQL(t, "password", allowed, "created_at ASC"), "ORDER BY created_at ASC")
	assert.Contains(t, orderBySQL(t, "title; DROP TABLE media", allowed, "created_at DESC"), "ORDER BY created_at DESC")
	assert.Contains(t, orderBySQL(t, "", allowed, "created_at DESC"), "ORDER BY created_at DESC")
}
