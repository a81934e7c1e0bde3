package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"go.uber.org/atomic"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var errNoHeader = errors.New("input has no header row")

// Dataset is an immutable table. Rows are aligned positionally to Columns.
type Dataset struct {
	Columns []string
	Rows    [][]string
}

// Len returns the number of data rows.
func (d *Dataset) Len() int {
	return len(d.Rows)
}

// String renders the dataset as comma-separated text, header first.
func (d *Dataset) String() string {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if len(d.Columns) > 0 {
		_ = w.Write(d.Columns)
	}
	_ = w.WriteAll(d.Rows)
	return buf.String()
}

// ParseError is returned when an upload cannot be read as tabular data.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse dataset: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse reads comma-separated text whose first record is the header. A leading
// byte order mark is consumed before parsing.
func Parse(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(transform.Nop)))
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	if len(records) == 0 {
		return nil, &ParseError{Err: errNoHeader}
	}

	return &Dataset{
		Columns: records[0],
		Rows:    records[1:],
	}, nil
}

// Store holds the single current dataset. Readers get a consistent snapshot;
// Replace swaps the whole table at once.
type Store struct {
	current *atomic.Pointer[Dataset]
}

func NewStore() *Store {
	return &Store{
		current: atomic.NewPointer(&Dataset{}),
	}
}

// Replace parses r and, on success, installs it as the current dataset and
// returns the name of its first column. The previous dataset is kept on error.
func (s *Store) Replace(r io.Reader) (string, error) {
	ds, err := Parse(r)
	if err != nil {
		return "", err
	}

	s.current.Store(ds)
	slog.Info("Dataset replaced", "columns", len(ds.Columns), "rows", ds.Len())
	return ds.Columns[0], nil
}

func (s *Store) Current() *Dataset {
	return s.current.Load()
}

func (s *Store) IsEmpty() bool {
	return len(s.Current().Columns) == 0
}
