package elblog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/phrazzld/elbship/internal/domain"
)

const (
	delimiter = ' '
	quoteChar = '"'
	escape    = '\\'

	// maxLineSize bounds a single record; user agents and URIs can be long.
	maxLineSize = 1 << 20
)

var (
	errUnterminatedQuote = errors.New("unterminated quoted field")
	errDanglingEscape    = errors.New("escape character at end of line")
)

// Parse reads every record in r. Blank lines are skipped. Any line that
// cannot be split, or that has fewer than domain.LegacyFieldCount fields,
// fails the whole parse.
func Parse(r io.Reader) ([]domain.RawRecord, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	var records []domain.RawRecord
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" {
			continue
		}

		fields, err := SplitFields(line)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", domain.ErrMalformedRecord, lineNo, err)
		}

		record, err := domain.NewRawRecord(fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read access log: %w", err)
	}

	return records, nil
}

type splitState int

const (
	stateFieldStart splitState = iota
	stateUnquoted
	stateQuoted
	stateAfterQuote
)

// SplitFields splits one record line into its fields. Quoting is optional per
// field, a doubled quote inside a quoted field is a literal quote, and a
// backslash makes the next character literal. Consecutive delimiters yield
// empty fields.
func SplitFields(line string) ([]string, error) {
	var (
		fields []string
		field  strings.Builder
		state  = stateFieldStart
	)

	emit := func() {
		fields = append(fields, field.String())
		field.Reset()
	}

	for i := 0; i < len(line); i++ {
		c := line[i]

		if c == escape && state != stateAfterQuote {
			if i+1 >= len(line) {
				return nil, errDanglingEscape
			}
			i++
			field.WriteByte(line[i])
			if state == stateFieldStart {
				state = stateUnquoted
			}
			continue
		}

		switch state {
		case stateFieldStart:
			switch c {
			case quoteChar:
				state = stateQuoted
			case delimiter:
				emit()
			default:
				field.WriteByte(c)
				state = stateUnquoted
			}

		case stateUnquoted:
			if c == delimiter {
				emit()
				state = stateFieldStart
			} else {
				field.WriteByte(c)
			}

		case stateQuoted:
			if c != quoteChar {
				field.WriteByte(c)
				continue
			}
			if i+1 < len(line) && line[i+1] == quoteChar {
				field.WriteByte(quoteChar)
				i++
				continue
			}
			state = stateAfterQuote

		case stateAfterQuote:
			if c == delimiter {
				emit()
				state = stateFieldStart
			} else {
				// Text after a closing quote is kept as part of the field.
				field.WriteByte(c)
				state = stateUnquoted
			}
		}
	}

	if state == stateQuoted {
		return nil, errUnterminatedQuote
	}
	// A line ending in a delimiter has a trailing empty field.
	emit()

	return fields, nil
}
