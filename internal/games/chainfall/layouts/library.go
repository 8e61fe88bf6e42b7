package layouts

import (
	"github.com/vovakirdan/chainfall/internal/storage"
)

// Record converts the layout into its stored form.
func (l Layout) Record() storage.LayoutRecord {
	return storage.LayoutRecord{
		ID:       l.ID,
		Name:     l.Name,
		Width:    l.Width,
		Height:   l.Height,
		Colors:   l.Colors,
		Rows:     l.RowStrings(),
		Metadata: l.Metadata,
	}
}

// FromRecord rebuilds a layout from the library, re-validating the rows.
func FromRecord(rec storage.LayoutRecord) (Layout, error) {
	l, err := FromRows(rec.ID, rec.Name, rec.Colors, rec.Rows)
	if err != nil {
		return Layout{}, err
	}
	l.Metadata = rec.Metadata
	return l, nil
}
