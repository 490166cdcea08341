package state

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klauern/skillhub/internal/util"
)

func TestFileStore_LoadMissing(t *testing.T) {
	st, err := NewFileStore(filepath.Join(t.TempDir(), "state.json")).Load()
	require.NoError(t, err)
	assert.Nil(t, st.LastSyncTime)
	assert.Empty(t, st.InstalledSkills)
}

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")
	store := NewFileStore(path)
	now := time.Date(2026, 3, 1, 12, 30, 0, 0, time.FixedZone("CET", 3600))

	st := Empty()
	st.Record(now, []string{"@demo/foo", "@acme/bar"})
	require.NoError(t, store.Save(st))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded.LastSyncTime)
	assert.True(t, now.Equal(*loaded.LastSyncTime))
	assert.Equal(t, time.UTC, loaded.LastSyncTime.Location())
	assert.Equal(t, []string{"@acme/bar", "@demo/foo"}, loaded.InstalledSkills)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must not be left behind")
}

func TestFileStore_ReadsExternalFormat(t *testing.T) {
	tests := map[string]struct {
		content string
		want    time.Time
	}{
		"offset suffix": {
			content: `{"last_sync_time": "2025-01-02T03:04:05.123456+00:00", "installed_skills": ["@demo/foo"]}`,
			want:    time.Date(2025, 1, 2, 3, 4, 5, 123456000, time.UTC),
		},
		"zulu suffix": {
			content: `{"last_sync_time": "2025-01-02T03:04:05Z", "installed_skills": ["@demo/foo"]}`,
			want:    time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "state.json")
			util.WriteFile(t, path, tt.content)

			st, err := NewFileStore(path).Load()
			require.NoError(t, err)
			require.NotNil(t, st.LastSyncTime)
			assert.True(t, tt.want.Equal(*st.LastSyncTime))
			assert.Equal(t, []string{"@demo/foo"}, st.InstalledSkills)
		})
	}
}

func TestFileStore_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	util.WriteFile(t, path, "{not json")

	st, err := NewFileStore(path).Load()

	assert.True(t, errors.Is(err, ErrCorrupt))
	require.NotNil(t, st)
	assert.Nil(t, st.LastSyncTime)
	assert.Empty(t, st.InstalledSkills)
}

func TestRecord_Replaces(t *testing.T) {
	st := Empty()
	st.Record(time.Now(), []string{"@a/one", "@a/two"})
	st.Record(time.Now(), []string{"@b/three"})
	assert.Equal(t, []string{"@b/three"}, st.InstalledSkills)

	st.Record(time.Now(), nil)
	assert.NotNil(t, st.InstalledSkills)
	assert.Empty(t, st.InstalledSkills)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore(nil)

	st, err := store.Load()
	require.NoError(t, err)
	st.Record(time.Now(), []string{"@demo/foo"})
	require.NoError(t, store.Save(st))

	st.InstalledSkills[0] = "mutated"
	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"@demo/foo"}, loaded.InstalledSkills)

	store.SaveErr = errors.New("disk full")
	assert.Error(t, store.Save(Empty()))
}
