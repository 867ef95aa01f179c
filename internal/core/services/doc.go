// Package services implements the driving ports of the scribe client.
//
// The incremental search pipeline lives here: Debouncer stabilises a
// rapidly changing term, SearchDispatcher turns each stable term into one
// API request and keeps only the latest generation's results, and
// ResolveSegments partitions result text into highlight segments.
//
// Services depend only on domain and the driven ports.
package services
