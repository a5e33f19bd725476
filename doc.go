// Package ringconnect provides the RingConnect API server.

// This package contains the main application entry point. The actual API
// documentation is organized into subpackages:

// - internal/handlers: HTTP request handlers for all API endpoints
// - internal/models: Data models and database schemas
// - internal/auth: Authentication and authorization services
// - internal/feed: Feed card assembly: reactions, comment threads, media
// - internal/websocket: WebSocket server for chat and real-time updates
// - internal/storage: File storage (S3) operations
// - internal/database: Database connection and migrations
// - internal/linkpreview: Open Graph scraping for link posts
// - internal/search: Profile search over Elasticsearch
// - internal/middleware: HTTP middleware (rate limiting, etc.)
// - internal/seed: Development and test data seeding

// See the individual package documentation for detailed API reference.
package ringconnect
