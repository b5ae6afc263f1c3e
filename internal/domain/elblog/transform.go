package elblog

import (
	"fmt"
	"strings"

	"github.com/phrazzld/elbship/internal/domain"
)

// Transform splits the compound fields of r and coerces its numeric fields.
// The client field must be exactly "ip:port" and the request field exactly
// "method uri version"; anything else is a malformed record.
func Transform(r domain.RawRecord) (domain.ParsedRecord, error) {
	clientParts := strings.Split(r.Client, ":")
	if len(clientParts) != 2 {
		return domain.ParsedRecord{}, fmt.Errorf("%w: client %q is not ip:port",
			domain.ErrMalformedRecord, r.Client)
	}

	requestParts := strings.Split(r.Request, " ")
	if len(requestParts) != 3 {
		return domain.ParsedRecord{}, fmt.Errorf("%w: request %q is not \"method uri version\"",
			domain.ErrMalformedRecord, r.Request)
	}

	return domain.ParsedRecord{
		Timestamp:              r.Timestamp,
		ELB:                    r.ELB,
		Backend:                r.Backend,
		RequestProcessingTime:  r.RequestProcessingTime,
		BackendProcessingTime:  r.BackendProcessingTime,
		ResponseProcessingTime: r.ResponseProcessingTime,
		ELBStatusCode:          domain.ParseNumeric(r.ELBStatusCode),
		BackendStatusCode:      domain.ParseNumeric(r.BackendStatusCode),
		ReceivedBytes:          domain.ParseNumeric(r.ReceivedBytes),
		SentBytes:              domain.ParseNumeric(r.SentBytes),
		UserAgent:              r.UserAgent,
		SSLCipher:              r.SSLCipher,
		SSLProtocol:            r.SSLProtocol,
		ClientIP:               clientParts[0],
		ClientPort:             clientParts[1],
		HTTPMethod:             requestParts[0],
		RequestURI:             requestParts[1],
		HTTPVersion:            requestParts[2],
	}, nil
}
