package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Field counts of the access log formats.
const (
	// FieldCount is the number of fields in a current access log line.
	FieldCount = 15

	// LegacyFieldCount is the number of fields written before the
	// user_agent, ssl_cipher and ssl_protocol columns were added.
	LegacyFieldCount = 12
)

// FieldNames is the fixed header of an access log line, in file order.
var FieldNames = [FieldCount]string{
	"timestamp",
	"elb",
	"client",
	"backend",
	"request_processing_time",
	"backend_processing_time",
	"response_processing_time",
	"elb_status_code",
	"backend_status_code",
	"received_bytes",
	"sent_bytes",
	"request",
	"user_agent",
	"ssl_cipher",
	"ssl_protocol",
}

// RawRecord is one access log line split into its named fields.
// The three trailing columns are nil when the source file predates them.
type RawRecord struct {
	Timestamp              string
	ELB                    string
	Client                 string
	Backend                string
	RequestProcessingTime  string
	BackendProcessingTime  string
	ResponseProcessingTime string
	ELBStatusCode          string
	BackendStatusCode      string
	ReceivedBytes          string
	SentBytes              string
	Request                string
	UserAgent              *string
	SSLCipher              *string
	SSLProtocol            *string
}

// NewRawRecord maps positional fields onto the header. At least
// LegacyFieldCount fields are required; missing trailing fields are left nil
// and fields beyond FieldCount are ignored.
func NewRawRecord(fields []string) (RawRecord, error) {
	if len(fields) < LegacyFieldCount {
		return RawRecord{}, fmt.Errorf("%w: got %d fields, want at least %d",
			ErrMalformedRecord, len(fields), LegacyFieldCount)
	}

	r := RawRecord{
		Timestamp:              fields[0],
		ELB:                    fields[1],
		Client:                 fields[2],
		Backend:                fields[3],
		RequestProcessingTime:  fields[4],
		BackendProcessingTime:  fields[5],
		ResponseProcessingTime: fields[6],
		ELBStatusCode:          fields[7],
		BackendStatusCode:      fields[8],
		ReceivedBytes:          fields[9],
		SentBytes:              fields[10],
		Request:                fields[11],
	}

	optional := []**string{&r.UserAgent, &r.SSLCipher, &r.SSLProtocol}
	for i, dst := range optional {
		if idx := LegacyFieldCount + i; idx < len(fields) {
			v := fields[idx]
			*dst = &v
		}
	}

	return r, nil
}

// Numeric is a field coerced to an integer when it parses as one, keeping the
// original text otherwise. Coercion failure is not an error.
type Numeric struct {
	raw   string
	value int64
	valid bool
}

// ParseNumeric coerces s to an integer where possible.
func ParseNumeric(s string) Numeric {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return Numeric{raw: s}
	}
	return Numeric{raw: s, value: v, valid: true}
}

// Int returns the integer value and whether coercion succeeded.
func (n Numeric) Int() (int64, bool) {
	return n.value, n.valid
}

// String returns the canonical integer text, or the original text when the
// field did not parse as an integer.
func (n Numeric) String() string {
	if n.valid {
		return strconv.FormatInt(n.value, 10)
	}
	return n.raw
}

// MarshalJSON encodes a coerced value as a JSON number and anything else as a string.
func (n Numeric) MarshalJSON() ([]byte, error) {
	if n.valid {
		return []byte(strconv.FormatInt(n.value, 10)), nil
	}
	return json.Marshal(n.raw)
}

// UnmarshalJSON accepts either a JSON number or a JSON string.
func (n *Numeric) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*n = ParseNumeric(s)
		return nil
	}
	var v int64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("numeric field: %w", err)
	}
	*n = Numeric{raw: strconv.FormatInt(v, 10), value: v, valid: true}
	return nil
}

// ParsedRecord is a RawRecord with the client and request fields split and
// the status and byte-count fields coerced. Field order is the JSON key order
// sent to the sink.
type ParsedRecord struct {
	Timestamp              string  `json:"timestamp"`
	ELB                    string  `json:"elb"`
	Backend                string  `json:"backend"`
	RequestProcessingTime  string  `json:"request_processing_time"`
	BackendProcessingTime  string  `json:"backend_processing_time"`
	ResponseProcessingTime string  `json:"response_processing_time"`
	ELBStatusCode          Numeric `json:"elb_status_code"`
	BackendStatusCode      Numeric `json:"backend_status_code"`
	ReceivedBytes          Numeric `json:"received_bytes"`
	SentBytes              Numeric `json:"sent_bytes"`
	UserAgent              *string `json:"user_agent"`
	SSLCipher              *string `json:"ssl_cipher"`
	SSLProtocol            *string `json:"ssl_protocol"`
	ClientIP               string  `json:"client_ip"`
	ClientPort             string  `json:"client_port"`
	HTTPMethod             string  `json:"http_method"`
	RequestURI             string  `json:"request_uri"`
	HTTPVersion            string  `json:"http_version"`
}
