package redirect

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
)

// ErrMissingColumn is reported when the header row lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

// ParseError reports why a CSV stream could not be decoded into rules.
type ParseError struct {
	// Line is the 1-based input line of the failure, or 0 if unknown.
	Line int

	// Err is the underlying decode error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse redirect rules: line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("parse redirect rules: %v", e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse decodes a CSV stream into rules, in row order.
//
// The first row is a header naming match_pattern and redirect_pattern (in
// any order); columns are bound by name. Every row must have exactly two
// fields. The first malformed row aborts parsing and no rules are returned.
// Empty or header-only input yields no rules and no error.
func Parse(r io.Reader) ([]Rule, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2

	rr := &ruleReader{r: cr}
	var rules []Rule
	if err := gocsv.UnmarshalCSV(rr, &rules); err != nil {
		if rr.empty {
			return []Rule{}, nil
		}
		return nil, newParseError(err)
	}
	if rules == nil {
		rules = []Rule{}
	}
	return rules, nil
}

func newParseError(err error) *ParseError {
	pe := &ParseError{Err: err}
	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		pe.Line = csvErr.Line
	}
	return pe
}

// ruleReader feeds gocsv from a csv.Reader and checks the header row before
// any record is bound to a Rule.
type ruleReader struct {
	r     *csv.Reader
	empty bool
}

func (rr *ruleReader) Read() ([]string, error) {
	return rr.r.Read()
}

func (rr *ruleReader) ReadAll() ([][]string, error) {
	rows, err := rr.r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		rr.empty = true
		return rows, nil
	}
	rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	if err := checkHeader(rows[0]); err != nil {
		return nil, &csv.ParseError{StartLine: 1, Line: 1, Column: 1, Err: err}
	}
	return rows, nil
}

func checkHeader(header []string) error {
	for _, want := range []string{ColumnMatchPattern, ColumnRedirectPattern} {
		found := false
		for _, h := range header {
			if h == want {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w %q", ErrMissingColumn, want)
		}
	}
	return nil
}
