// Package http implements HTTP request handlers for the fuel station
// reporting service. It provides a thin layer between HTTP transport and
// business logic, following the clean architecture principle of keeping
// handlers focused solely on HTTP concerns.
//
// # Architecture Principles
//
// Handlers in this package follow these principles:
//
//	1. Thin handlers - minimal logic, delegate to services
//	2. HTTP-only concerns - request parsing, response formatting
//	3. Error transformation - convert service errors to HTTP responses
//	4. No business logic - all logic belongs in the service layer
//	5. Consistent patterns - standardized request/response handling
//
// # Request Flow
//
// A typical request flows through these layers:
//
//	HTTP Request -> Chi Router -> Middleware -> Handler -> Service -> Store
//	                                               |
//	HTTP Response <- Handler <- Service Response <-+
//
// # Error Handling
//
// All errors follow RFC 7807 Problem Details specification:
//
//	{
//	    "type": "/errors/no-dataset",
//	    "title": "No Dataset Loaded",
//	    "status": 404,
//	    "detail": "No spreadsheet has been uploaded yet",
//	    "instance": "/api/dataset#trace-abc123"
//	}
//
// # Middleware Integration
//
// Handlers work with these middleware:
//
//	- RequestID: Adds unique request ID for tracing
//	- Logger: Structured logging with slog
//	- Recovery: Handles panics gracefully
//	- CORS: Configures cross-origin requests
//
// # Testing
//
// Handlers are tested using httptest with mocked service interfaces.
package http
