package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPendingMigrations(t *testing.T) {
	all, err := pendingMigrations(map[string]bool{})
	require.NoError(t, err)
	assert.Equal(t, []string{"001_create_students.sql", "002_create_facial_embeddings.sql"}, all)

	rest, err := pendingMigrations(map[string]bool{"001_create_students.sql": true})
	require.NoError(t, err)
	assert.Equal(t, []string{"002_create_facial_embeddings.sql"}, rest)
}

func TestNew_RequiresURL(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}
