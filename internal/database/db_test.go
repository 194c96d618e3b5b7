package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildDSN(t *testing.T) {
	dsn := buildDSN("app", "s3cret", "db.local", "3306", "media")
	assert.Equal(t,
		"app:s3cret@tcp(db.local:3306)/media?charset=utf8mb4&parseTime=true&loc=UTC&clientFoundRows=true",
		dsn)

	// Existence checks built on RowsAffected need matched-rows semantics.
	assert.Contains(t, dsn, "clientFoundRows=true")
}

func TestBuildDSNWithoutPassword(t *testing.T) {
	dsn := buildDSN("root", "", "127.0.0.1", "3307", "media")
	assert.Equal(t,
		"root@tcp(127.0.0.1:3307)/media?charset=utf8mb4&parseTime=true&loc=UTC&clientFoundRows=true",
		dsn)
}
