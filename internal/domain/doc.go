// Package domain contains the core value types of the shipper: the raw and
// parsed forms of a load-balancer access log record. It is independent of
// any storage, transport or sink.
package domain
