package middleware

import (
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/JoeWHoward/DockerPlayground/internal/server"
)

// Middlewares groups all middleware components used by the HTTP server.
type Middlewares struct {
	// Global holds CORS, request logging, recovery, secure headers and the global error handler.
	Global *GlobalMiddlewares

	// ContextEnhancer enriches each request with a request-scoped logger.
	ContextEnhancer *ContextEnhancer

	// Tracing provides the New Relic middleware and custom transaction attributes.
	Tracing *TracingMiddleware

	// RateLimit enforces the per-IP request budget and records New Relic events on denial.
	RateLimit *RateLimitMiddleware

	// UnitOfWork opens and closes the database session of each request.
	UnitOfWork *UnitOfWork
}

// NewMiddlewares constructs all middleware components using the application container.
//
// Without New Relic, nrApp is nil and the tracing middleware is a no-op.
func NewMiddlewares(s *server.Server) *Middlewares {
	var nrApp *newrelic.Application
	if s.LoggerService != nil {
		nrApp = s.LoggerService.GetApplication()
	}

	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, nrApp),
		RateLimit:       NewRateLimitMiddleware(s),
		UnitOfWork:      NewUnitOfWork(s),
	}
}
