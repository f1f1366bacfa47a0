package domain

// Dataset is an in-memory table parsed from an uploaded timesheet CSV.
// It is the source of truth for filtering, metrics and plotting, and lives
// for the duration of one interactive session.
type Dataset struct {
	ID     string
	Name   string // original file name, for display
	Header []string
	Rows   [][]string
	Hash   string // sha256 of the raw CSV bytes, cache key for analysis
}

// HasColumn reports whether name appears in the dataset header.
func (d *Dataset) HasColumn(name string) bool {
	return d.ColumnIndex(name) >= 0
}

// ColumnIndex returns the position of name in the header, or -1. The first
// occurrence wins when the header repeats a name.
func (d *Dataset) ColumnIndex(name string) int {
	for i, h := range d.Header {
		if h == name {
			return i
		}
	}
	return -1
}
