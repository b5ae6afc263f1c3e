// Package mocks provides hand-written test doubles for the shipper's
// external collaborators. Each mock records its calls and either delegates
// to an optional function field or returns its default values.
package mocks
