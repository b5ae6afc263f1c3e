// Package loggly forwards rendered access log records to the Loggly bulk
// endpoint. One object becomes one POST whose body is the records joined by
// newlines.
package loggly
