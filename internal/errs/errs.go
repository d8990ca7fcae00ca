// Package errs defines the error shapes returned to API clients.
//
// Every failure that reaches the HTTP layer is turned into an HTTPError
// so clients always receive the same JSON structure, whether the cause
// was a missing row, a constraint violation or an unknown route.
package errs
