// Package client talks to the back-office REST API.
//
// # Overview
//
//  1. Gateway sends JSON requests through resty. Do attaches the bearer
//     token from a TokenSource and fails fast when there is none; DoPublic
//     sends no credentials. Every exchange gets an X-Request-ID, is logged at
//     debug level and recorded in Metrics.
//  2. AuthAPI wraps the public login and registration endpoints and
//     normalizes the response shapes servers use.
//
// # Error Handling
//
// Failures are *Error values classified by Kind. Each unwraps to a sentinel
// (ErrNetwork, ErrUnauthorized, ErrUnauthenticated, ...) so callers can use
// errors.Is, or KindOf for a switch. Message carries text fit for display:
// the server's "message" or "error" field when present, otherwise a generic
// one.
//
//	401, 403           KindUnauthorized
//	other 4xx          KindServerValidation
//	5xx                KindServer
//	transport failure  KindNetwork
//
// Concurrency & Contexts
//
// A Gateway is safe for concurrent use. All calls honor ctx.
package client
