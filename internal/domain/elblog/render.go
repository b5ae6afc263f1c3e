package elblog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/phrazzld/elbship/internal/domain"
)

// Timestamp layouts of the source records and the combined log line.
const (
	SourceTimeLayout   = "2006-01-02T15:04:05.999999999Z"
	CombinedTimeLayout = "02/Jan/2006:15:04:05"
)

// Format selects the representation of each record sent to the sink.
type Format string

// Supported sink formats.
const (
	// FormatHybrid is the combined log line immediately followed by the JSON record.
	FormatHybrid Format = "hybrid"
	// FormatJSON is the JSON record alone, one per line.
	FormatJSON Format = "json"
	// FormatCombined is the combined log line alone.
	FormatCombined Format = "combined"
)

// ParseFormat validates a configured format name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case FormatHybrid, FormatJSON, FormatCombined:
		return f, nil
	default:
		return "", fmt.Errorf("unknown sink format %q", name)
	}
}

// ContentType is the declared content type of a payload in this format.
func (f Format) ContentType() string {
	if f == FormatJSON {
		return "application/json"
	}
	return "text/plain"
}

// CombinedLine renders p as an Apache combined-style line. User identity and
// referrer are unavailable and written as placeholders; a missing user agent
// is written as "-". The line ends with a space.
func CombinedLine(p domain.ParsedRecord) (string, error) {
	ts, err := time.Parse(SourceTimeLayout, p.Timestamp)
	if err != nil {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidTimestamp, p.Timestamp)
	}

	userAgent := "-"
	if p.UserAgent != nil && *p.UserAgent != "" {
		userAgent = *p.UserAgent
	}

	return fmt.Sprintf(`%s %s - [%s +0000] "%s %s %s" %s %s "" "%s" `,
		p.ClientIP,
		p.ELB,
		ts.Format(CombinedTimeLayout),
		p.HTTPMethod,
		p.RequestURI,
		p.HTTPVersion,
		p.ELBStatusCode.String(),
		p.SentBytes.String(),
		userAgent,
	), nil
}

// JSONLine encodes p on a single line without HTML escaping.
func JSONLine(p domain.ParsedRecord) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(p); err != nil {
		return "", fmt.Errorf("failed to encode record: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// Line renders a single parsed record in format f.
func Line(p domain.ParsedRecord, f Format) (string, error) {
	switch f {
	case FormatJSON:
		return JSONLine(p)
	case FormatCombined:
		return CombinedLine(p)
	case FormatHybrid:
		combined, err := CombinedLine(p)
		if err != nil {
			return "", err
		}
		js, err := JSONLine(p)
		if err != nil {
			return "", err
		}
		return combined + js, nil
	default:
		return "", fmt.Errorf("unknown sink format %q", f)
	}
}

// Render transforms every record and renders it in format f, preserving order.
// The first record that fails to transform or render fails the batch.
func Render(records []domain.RawRecord, f Format) ([]string, error) {
	lines := make([]string, 0, len(records))
	for i, r := range records {
		parsed, err := Transform(r)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		line, err := Line(parsed, f)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		lines = append(lines, line)
	}
	return lines, nil
}
