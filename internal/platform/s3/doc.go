// Package s3 fetches access log objects from S3 over plain HTTP with
// SigV4-signed GET requests.
//
// Only the single operation this service needs is implemented: a GET of one
// object by URL, bounded by a timeout, returning the whole body.
package s3
