// Package config handles configuration loading, parsing, and validation
// from various sources (environment variables, files). It provides type-safe
// access to the settings needed by the receiver, the worker, the storage
// fetcher and the sink forwarder while keeping configuration details separate
// from the shipping logic.
package config
