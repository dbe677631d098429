// Package httputil provides the HTTP client for the archtext API server.
//
// # Overview
//
// This package provides the client-side counterpart of the `archtext serve`
// API, plus the retry infrastructure it is built on:
//
//   - [Client]: JSON client for /v1/parse, /v1/print, and /v1/documents
//   - [Retry]: Automatic retry with exponential backoff
//
// The wire types ([ParseRequest], [PrintRequest], ...) are shared with the
// server so the two sides cannot drift apart.
//
// # Retry
//
// [Retry] wraps requests with automatic retry for transient failures:
//
//   - Network errors
//   - 5xx server errors
//
// It uses exponential backoff, doubling the delay after each attempt:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    return doRequest()
//	})
//
// Non-transient errors (4xx responses, marshaling failures) are returned
// immediately without retrying.
//
// # Configuration
//
// Default settings are suitable for most use cases:
//
//   - Request timeout: 30 seconds
//   - Max retries: 3
//   - Base backoff: 1 second
package httputil
