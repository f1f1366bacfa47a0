package cli

import (
	"fmt"

	"github.com/alexanderramin/worklens/internal/domain"
	"github.com/alexanderramin/worklens/internal/repository"
)

// SessionState holds the single session's context, shared across all
// views via pointer. One upload, one analysis, one active filter.
type SessionState struct {
	App *App

	// Uploaded dataset and its model-backed analysis.
	Dataset        *domain.Dataset
	Analysis       *domain.AnalysisResult
	HeaderMismatch bool
	Summarizing    bool

	// Active filter selection. Empty column means no filter.
	FilterColumn string
	FilterValue  string

	// Terminal dimensions
	Width  int
	Height int
}

// SetDataset replaces the session's dataset and resets everything
// derived from the previous one.
func (s *SessionState) SetDataset(ds *domain.Dataset) {
	s.Dataset = ds
	s.Analysis = nil
	s.HeaderMismatch = false
	s.Summarizing = false
	s.ClearFilter()
}

// SetFilter records the active filter selection.
func (s *SessionState) SetFilter(column, value string) {
	s.FilterColumn = column
	s.FilterValue = value
}

// ClearFilter resets the active filter selection.
func (s *SessionState) ClearFilter() {
	s.FilterColumn = ""
	s.FilterValue = ""
}

// Filter returns the active filter as a repository filter, or nil when
// no filter is set.
func (s *SessionState) Filter() *repository.Filter {
	if s.FilterColumn == "" {
		return nil
	}
	return &repository.Filter{Column: s.FilterColumn, Value: s.FilterValue}
}

// FilterDesc returns a human-readable description of the active filter,
// or "" when no filter is set.
func (s *SessionState) FilterDesc() string {
	if s.FilterColumn == "" {
		return ""
	}
	return fmt.Sprintf("%s = %s", s.FilterColumn, s.FilterValue)
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator) and
// status bar (2 lines: separator + hints).
func (s *SessionState) ContentHeight() int {
	h := s.Height - 4
	if h < 1 {
		return 1
	}
	return h
}
