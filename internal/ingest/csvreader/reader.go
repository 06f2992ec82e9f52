// Package csvreader streams semicolon-delimited CSV uploads as field-keyed records.
package csvreader

import (
	"encoding/csv"
	"errors"
	"io"
	"iter"
	"math"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/kailas-cloud/salarydex/internal/domain"
	"github.com/kailas-cloud/salarydex/internal/domain/collection/field"
	"github.com/kailas-cloud/salarydex/internal/domain/numeric"
)

// DefaultComma is the field delimiter of the salary exports.
const DefaultComma = ';'

// Options configures a Reader.
type Options struct {
	// Collection tags every produced record.
	Collection string
	// Columns declares the type of known columns. String columns keep their raw
	// text, Float and Integer columns must be numeric or empty. Undeclared
	// columns go through numeric.Coerce.
	Columns map[string]field.Type
	// Comma overrides the delimiter; zero means DefaultComma.
	Comma rune
}

// Record is one data row keyed by lower-cased header name.
type Record struct {
	Line       int
	Collection string
	Fields     map[string]any
}

// Reader yields records from a CSV stream in a single pass.
type Reader struct {
	csv    *csv.Reader
	header []string
	types  []field.Type
	opts   Options
	done   bool
}

// ValidateFilename rejects uploads whose extension is not .csv.
func ValidateFilename(name string) error {
	if !strings.EqualFold(filepath.Ext(name), ".csv") {
		return domain.ErrUnsupportedFile
	}
	return nil
}

// NewReader wraps src, strips a UTF-8 byte order mark and reads the header row.
func NewReader(src io.Reader, opts Options) (*Reader, error) {
	if opts.Comma == 0 {
		opts.Comma = DefaultComma
	}

	cr := csv.NewReader(transform.NewReader(src, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	cr.Comma = opts.Comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	raw, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, domain.NewValidation("csv file is empty")
		}
		return nil, domain.NewValidation("read csv header: %v", err)
	}

	header := make([]string, len(raw))
	types := make([]field.Type, len(raw))
	seen := make(map[string]bool, len(raw))
	for i, h := range raw {
		name := strings.ToLower(strings.TrimSpace(h))
		if name == "" {
			continue
		}
		if seen[name] {
			return nil, domain.NewValidation("duplicate csv column %q", name)
		}
		seen[name] = true
		header[i] = name
		types[i] = opts.Columns[name]
	}
	if len(seen) == 0 {
		return nil, domain.NewValidation("csv header has no named columns")
	}

	return &Reader{csv: cr, header: header, types: types, opts: opts}, nil
}

// Header returns the normalized column names. Unnamed columns are empty and skipped.
func (r *Reader) Header() []string { return r.header }

// Next returns the next record or io.EOF after the last row.
func (r *Reader) Next() (Record, error) {
	if r.done {
		return Record{}, io.EOF
	}

	row, err := r.csv.Read()
	if err != nil {
		r.done = true
		if errors.Is(err, io.EOF) {
			return Record{}, io.EOF
		}
		return Record{}, domain.NewValidation("read csv row: %v", err)
	}

	line, _ := r.csv.FieldPos(0)
	if len(row) != len(r.header) {
		r.done = true
		return Record{}, &domain.MalformedRowError{Line: line, Want: len(r.header), Got: len(row)}
	}

	fields := make(map[string]any, len(row))
	for i, v := range row {
		name := r.header[i]
		if name == "" {
			continue
		}
		cv, err := coerce(r.types[i], v)
		if err != nil {
			r.done = true
			return Record{}, &domain.MalformedNumberError{Line: line, Column: name, Value: v}
		}
		fields[name] = cv
	}

	return Record{Line: line, Collection: r.opts.Collection, Fields: fields}, nil
}

// All returns a lazy sequence over the remaining records. It stops after the
// first error and cannot be restarted.
func (r *Reader) All() iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		for {
			rec, err := r.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(rec, err) || err != nil {
				return
			}
		}
	}
}

// Validate reads src to the end and returns the number of data rows, or the
// first structural error.
func Validate(src io.Reader, opts Options) (int, error) {
	r, err := NewReader(src, opts)
	if err != nil {
		return 0, err
	}
	rows := 0
	for _, err := range r.All() {
		if err != nil {
			return rows, err
		}
		rows++
	}
	return rows, nil
}

var errNotNumeric = errors.New("not numeric")

func coerce(t field.Type, v string) (any, error) {
	switch t {
	case "":
		return numeric.Coerce(v), nil
	case field.Float:
		if strings.TrimSpace(v) == "" {
			return 0.0, nil
		}
		f, ok := numeric.Parse(v)
		if !ok {
			return nil, errNotNumeric
		}
		return f, nil
	case field.Integer:
		if strings.TrimSpace(v) == "" {
			return int64(0), nil
		}
		f, ok := numeric.Parse(v)
		// float64(MaxInt64) rounds up to 2^63, itself out of range.
		if !ok || f != math.Trunc(f) || f >= math.MaxInt64 || f < math.MinInt64 {
			return nil, errNotNumeric
		}
		return int64(f), nil
	default:
		return v, nil
	}
}
