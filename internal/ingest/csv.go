package ingest

import (
	"bytes"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/worklens/internal/domain"
	"github.com/google/uuid"
)

// Parse reads uploaded CSV bytes into a Dataset. The first record is taken
// as the header row; every following record becomes a data row. A malformed
// CSV surfaces as an error so the caller can clear any prior analysis state.
func Parse(name string, data []byte) (*domain.Dataset, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("csv %q is empty", name)
	}
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
	}

	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv row %d: %w", len(rows)+2, err)
		}
		rows = append(rows, rec)
	}

	sum := sha256.Sum256(data)

	return &domain.Dataset{
		ID:     uuid.New().String(),
		Name:   name,
		Header: header,
		Rows:   rows,
		Hash:   hex.EncodeToString(sum[:]),
	}, nil
}

// Serialize renders the dataset back to CSV text, header first. This is the
// form embedded verbatim in the analysis prompt.
func Serialize(d *domain.Dataset) string {
	var b strings.Builder
	w := csv.NewWriter(&b)
	w.Write(d.Header)
	for _, row := range d.Rows {
		w.Write(row)
	}
	w.Flush()
	return b.String()
}
