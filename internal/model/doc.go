// Package model declares the mapped entities and their tables.
//
// User and Address are the two related records the API serves. Genome
// is a standalone table that is created alongside them but never served.
// Identifiers are zero until the database assigns them on insert.
package model
