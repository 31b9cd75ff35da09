// Package csvscan implements a small character-level CSV scanner.
//
// It is deliberately more lenient than encoding/csv: it accepts bare '\r'
// line terminators, quotes appearing mid-field, and ragged rows, because the
// files it reads come from spreadsheet exports of varying quality.
package csvscan

import (
	"errors"
	"io"
	"strings"
)

// ErrUnterminatedQuote is returned when the input ends inside a quoted field.
var ErrUnterminatedQuote = errors.New("csvscan: unterminated quoted field")

const bom = "\ufeff"

// scanner states
const (
	stateFieldStart = iota // at the beginning of a field
	stateInField           // inside an unquoted field
	stateInQuotes          // inside a quoted field
	stateQuoteEnd          // just saw a '"' inside a quoted field
)

// ScanAll reads the whole input and returns it as rows of string cells.
// A leading UTF-8 BOM is stripped. Rows are separated by '\n', '\r' or
// "\r\n"; fields by ','. A field wrapped in double quotes may contain
// commas, line breaks and escaped quotes (`""`). Trailing empty lines are
// dropped.
func ScanAll(r io.Reader) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ScanString(string(data))
}

// ScanString scans CSV content held in memory.
func ScanString(data string) ([][]string, error) {
	data = strings.TrimPrefix(data, bom)

	var (
		rows  [][]string
		row   []string
		field strings.Builder
		state = stateFieldStart
	)

	endField := func() {
		row = append(row, field.String())
		field.Reset()
		state = stateFieldStart
	}
	endRow := func() {
		endField()
		rows = append(rows, row)
		row = nil
	}

	for i := 0; i < len(data); i++ {
		c := data[i]

		switch state {
		case stateFieldStart:
			switch c {
			case '"':
				state = stateInQuotes
			case ',':
				endField()
			case '\n':
				endRow()
			case '\r':
				endRow()
				if i+1 < len(data) && data[i+1] == '\n' {
					i++
				}
			default:
				field.WriteByte(c)
				state = stateInField
			}

		case stateInField:
			switch c {
			case ',':
				endField()
			case '\n':
				endRow()
			case '\r':
				endRow()
				if i+1 < len(data) && data[i+1] == '\n' {
					i++
				}
			default:
				field.WriteByte(c)
			}

		case stateInQuotes:
			if c == '"' {
				state = stateQuoteEnd
			} else {
				field.WriteByte(c)
			}

		case stateQuoteEnd:
			switch c {
			case '"':
				// escaped quote inside a quoted field
				field.WriteByte('"')
				state = stateInQuotes
			case ',':
				endField()
			case '\n':
				endRow()
			case '\r':
				endRow()
				if i+1 < len(data) && data[i+1] == '\n' {
					i++
				}
			default:
				// stray content after a closing quote; keep it
				field.WriteByte(c)
				state = stateInField
			}
		}
	}

	switch state {
	case stateInQuotes:
		return nil, ErrUnterminatedQuote
	case stateInField, stateQuoteEnd:
		endRow()
	case stateFieldStart:
		if len(row) > 0 {
			endRow()
		}
	}

	return rows, nil
}
