// Package client talks to an sx server over HTTP.
//
// # Overview
//
// The package provides:
//  1. A transport contract (see the Client interface) covering the four
//     credentialed calls the client makes: auth probe, export, listing and
//     rename.
//  2. A net/http implementation (see HTTPClient) that resolves the access
//     token through a CredentialProvider before every call, attaches it as
//     X-SX-API-KEY, tags each request with an X-Request-ID, and decodes the
//     server's {status, message, data} envelope.
//
// # Error Handling
//
// A missing token fails with ErrNoToken before any request is made. Every
// status other than 200 is a failure and is reported as a *StatusError, which
// matches one of ErrUnauthorized, ErrNotFound, ErrUnavailable or
// ErrUnexpectedStatus with errors.Is. Transport failures match
// ErrUnavailable; a listing without a data field matches ErrMalformedResponse.
// Nothing is retried.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept a
// context.Context and honor cancellation; the only timeout is the optional
// one configured on the client.
package client
