package migrate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedVersions_Sorted(t *testing.T) {
	versions, err := embeddedVersions()
	require.NoError(t, err)
	require.NotEmpty(t, versions)
	assert.Equal(t, "0001_init", versions[0])
	assert.IsNonDecreasing(t, versions)
}

func TestEmbeddedMigration_DefinesConstraints(t *testing.T) {
	b, err := migrationsFS.ReadFile("migrations/0001_init.sql")
	require.NoError(t, err)
	sql := string(b)
	assert.Contains(t, sql, "users_email_key UNIQUE (email)")
	assert.Contains(t, sql, "admissions_user_college_key UNIQUE (user_id, college_id)")
}
