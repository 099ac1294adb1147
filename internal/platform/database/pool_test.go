package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kycgate/internal/platform/config"
)

func TestDriverName(t *testing.T) {
	assert.Equal(t, "postgres", DriverName("postgres"))
	assert.Equal(t, "postgres", DriverName("pq"))
	assert.Equal(t, "pgx", DriverName("pgx"))
	assert.Equal(t, "pgx", DriverName(""))
}

func TestNewWithoutURL(t *testing.T) {
	pool, err := New(config.DatabaseConfig{})
	require.NoError(t, err)
	assert.Nil(t, pool)

	// nil pools are safe to probe and close
	assert.Error(t, pool.Health(context.Background()))
	assert.NoError(t, pool.Close())
}
