// Package service holds the operations behind the HTTP routes: writing the
// seed graph and reading users and addresses back through the request's
// database session.
package service
