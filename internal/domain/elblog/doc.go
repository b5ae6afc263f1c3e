// Package elblog reads classic load-balancer access log files and turns their
// records into the lines sent to the log sink.
//
// A file is a sequence of newline-terminated records with fields separated by
// single spaces. Fields may be double-quoted and a backslash escapes the next
// character. Parse splits a file into domain.RawRecord values, Transform
// expands the compound client and request fields and coerces the numeric
// ones, and Render produces sink lines in one of the supported Formats.
package elblog
