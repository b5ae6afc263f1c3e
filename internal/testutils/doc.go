// Package testutils holds helpers shared by tests across packages: a
// capturing slog handler and fixtures for access log bodies and SNS
// deliveries.
package testutils
