package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestStore(t *testing.T) *Store {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return &Store{db: db}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	s := setupTestStore(t)

	payload := []byte(`{"name":"Operator","children":[]}`)
	require.NoError(t, s.Save("my-lattice", KindTemplate, payload))

	got, kind, err := s.Load("my-lattice")
	require.NoError(t, err)
	assert.Equal(t, payload, got)
	assert.Equal(t, KindTemplate, kind)
}

func TestLoadMissingReturnsErrNotFound(t *testing.T) {
	s := setupTestStore(t)

	_, _, err := s.Load("does-not-exist")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveOverwritesSameNameAndKind(t *testing.T) {
	s := setupTestStore(t)

	require.NoError(t, s.Save("lattice", KindTemplate, []byte(`{"v":1}`)))
	require.NoError(t, s.Save("lattice", KindTemplate, []byte(`{"v":2}`)))

	got, _, err := s.Load("lattice")
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":2}`, string(got))
}

func TestSaveRejectsKindChangeUnderSameName(t *testing.T) {
	s := setupTestStore(t)

	require.NoError(t, s.Save("shared-name", KindTemplate, []byte(`{}`)))
	err := s.Save("shared-name", KindRuleSet, []byte(`[]`))
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestListFiltersByKind(t *testing.T) {
	s := setupTestStore(t)

	require.NoError(t, s.Save("a-template", KindTemplate, []byte(`{}`)))
	require.NoError(t, s.Save("b-template", KindTemplate, []byte(`{}`)))
	require.NoError(t, s.Save("a-rules", KindRuleSet, []byte(`[]`)))

	templates, err := s.List(KindTemplate)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a-template", "b-template"}, templates)

	rulesets, err := s.List(KindRuleSet)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a-rules"}, rulesets)
}

func TestIsURLRecognizesSchemes(t *testing.T) {
	assert.True(t, isURL("https://example.turso.io"))
	assert.True(t, isURL("http://localhost:8080/db"))
	assert.True(t, isURL("libsql://example.turso.io"))
	assert.False(t, isURL("catalog.db"))
	assert.False(t, isURL("/var/lib/rewrite/catalog.db"))
}
