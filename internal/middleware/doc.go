// Package middleware provides HTTP middleware for the Attune API.
//
// The middleware package contains reusable middleware components for
// request tracing, logging, panic recovery, CORS, rate limiting, and
// response compression.
//
// # Available Middleware
//
// Core middleware components:
//
//   - RequestID: Unique request ID generation and propagation
//   - Logger: Structured request logging via slog
//   - Recovery: Panic recovery returning a JSON 500
//   - CORS: Cross-origin request handling
//   - RateLimit: Token bucket request throttling per client address
//   - Compress: Gzip response compression
//
// # Composition
//
// Middleware is composed with Chain, applied in order:
//
//	handler := middleware.Chain(mux,
//	    middleware.RequestID,
//	    middleware.Logger,
//	    middleware.Recovery,
//	    middleware.CORS(cfg.Server.AllowedOrigins),
//	    middleware.RateLimit(limiter),
//	    middleware.Compress,
//	)
//
// # Rate Limiting
//
// Rate limiting protects against abuse. The API is anonymous, so buckets
// are keyed by client address:
//
//	limiter := middleware.NewRateLimiter(middleware.RateLimitConfig{})
//	defer limiter.Stop()
//
// # Context Values
//
// Middleware sets context values accessible via helper functions:
//
//   - GetRequestID(ctx): Returns unique request identifier
package middleware
