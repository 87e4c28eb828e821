// Package repository implements the data access layer for the Attune API.
//
// The repository package contains all database operations using SurrealDB.
// Each repository struct handles CRUD operations for a specific domain entity.
//
// # Repository Pattern
//
// All repositories follow a consistent pattern:
//
//   - Constructor function (NewXxxRepository) accepts a database connection
//   - Methods implement specific data operations (Create, GetByID, Delete, etc.)
//   - SurrealQL queries are used for all database interactions
//   - Results are parsed and mapped to model structs
//
// # Database Connection
//
// Repositories accept a database.Database interface, allowing:
//
//   - Connection pooling and management at a higher level
//   - Easy testing with mock implementations
//
// # Query Patterns
//
// Common query patterns used:
//
//   - Parameterized queries with $variable syntax for security
//   - type::record() for safe ID handling
//   - time::now() for automatic timestamps
//
// # Example Usage
//
//	repo := NewSurveyRepository(db)
//	record, err := repo.GetByID(ctx, "survey:abc123")
//	if err != nil {
//	    return err
//	}
//	if record == nil {
//	    // Not found
//	}
package repository
