package db

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xxxsen/bizdir/internal/config"
)

func TestBuildDSN(t *testing.T) {
	require.Equal(t, "postgres://x", buildDSN(config.DatabaseConfig{DSN: "postgres://x", Host: "ignored"}))
	require.Equal(t,
		"host=db port=5432 user=u password=p dbname=bizdir sslmode=disable",
		buildDSN(config.DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "bizdir"}),
	)
}

func TestMigrationsEmbedded(t *testing.T) {
	content, err := migrationsFS.ReadFile("migrations/001_init.sql")
	require.NoError(t, err)
	require.Contains(t, string(content), "CREATE TABLE IF NOT EXISTS companies")
}
