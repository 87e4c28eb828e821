// Package config manages application configuration for the Attune API.
//
// The config package loads and validates configuration from environment variables.
// All configuration is centralized here to provide a single source of truth.
//
// # Configuration Loading
//
// Configuration is loaded from environment variables:
//
//	cfg, err := config.Load()
//
// # Configuration Groups
//
// Configuration is organized into logical groups:
//
//   - ServerConfig: HTTP server settings (port, timeouts, CORS origins)
//   - DatabaseConfig: SurrealDB connection settings
//   - RateLimitConfig: Request throttling settings
//   - UploadConfig: Survey upload limits
//
// # Environment Variables
//
// Key environment variables:
//
//	SERVER_PORT           - HTTP server port (default: 8080)
//	SERVER_ENV            - development, production, or test
//	CORS_ALLOWED_ORIGINS  - Comma-separated list of allowed origins
//	DB_HOST               - SurrealDB host
//	DB_PORT               - SurrealDB port
//	DB_NAMESPACE          - Database namespace (default: attune)
//	DB_DATABASE           - Database name (default: main)
//	RATE_LIMIT_RATE       - Requests allowed per window
//	UPLOAD_MAX_BODY_BYTES - Maximum survey upload size
//
// # Default Values
//
// Sensible defaults are provided for development:
//
//	func getEnv(key, defaultValue string) string {
//	    if value := os.Getenv(key); value != "" {
//	        return value
//	    }
//	    return defaultValue
//	}
package config
