// Package repository handles all interactions with the database.
//
// It holds the lookups for each mapped entity. Every method runs on the
// request's *database.Session, so reads see what the request has staged.
package repository
