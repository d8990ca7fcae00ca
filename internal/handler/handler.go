// Package handler is the first layer. The first entry point
// for business logic after the router.
//
// It parses path parameters using the validation package,
// takes the request's database session from the unit of work
// middleware, and calls the appropriate service.
package handler
