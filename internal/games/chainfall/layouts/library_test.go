package layouts_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/chainfall/internal/games/chainfall/layouts"
	"github.com/vovakirdan/chainfall/internal/storage"
)

func TestLayoutLibraryRoundTrip(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "layouts.db"))
	require.NoError(t, err)
	defer store.Close()

	all, err := layouts.NewLoader(testdataPath()).LoadAll()
	require.NoError(t, err)
	for _, l := range all {
		require.NoError(t, store.SaveLayout(l.Record()))
	}

	rec, err := store.Layout("checker")
	require.NoError(t, err)
	require.NotNil(t, rec)

	l, err := layouts.FromRecord(*rec)
	require.NoError(t, err)
	assert.Equal(t, "Checkerboard", l.Name)
	assert.Equal(t, 2, l.Colors)
	assert.Equal(t, []string{"1212", "2121", "1212", "2121"}, l.RowStrings())
	assert.Equal(t, "overflows on the first spawn", l.Metadata["note"])
}

func TestFromRecordRejectsCorruptRows(t *testing.T) {
	_, err := layouts.FromRecord(storage.LayoutRecord{
		ID:     "bad",
		Width:  3,
		Height: 2,
		Colors: 4,
		Rows:   []string{"...", ".."},
	})
	assert.Error(t, err)
}
