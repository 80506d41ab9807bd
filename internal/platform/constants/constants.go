// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Security: JWT issuer and token transport.
  - Storage: table schemas, Redis and Badger key prefixes, AMQP queue names.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "tasknest-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the default 'iss' claim in JWTs.
	AuthIssuer = "tasknest.app"

	// BearerScheme is the Authorization header scheme carrying access tokens.
	BearerScheme = "bearer"

	// TokenTypeBearer is the token_type returned by login and refresh.
	TokenTypeBearer = "bearer"

	// RevocationSweepInterval is how often the in-memory revocation store drops expired entries.
	RevocationSweepInterval = 1 * time.Minute

	// BadgerGCInterval is how often the Badger value log is garbage collected.
	BadgerGCInterval = 5 * time.Minute
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
	HeaderAuthorization = "Authorization"
	HeaderRetryAfter    = "Retry-After"
	HeaderContentType   = "Content-Type"
	ContentTypeJSON     = "application/json; charset=utf-8"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldMessage = "message"
	FieldStatus  = "status"
	FieldChecks  = "checks"
)

// # Listing

const (
	// MaxListResults caps every list endpoint. Lists are not paginated.
	MaxListResults = 100
)

// # Database Schemas

const (
	SchemaUsers = "users"
	SchemaTodo  = "todo"
)

// # Key Prefixes (Cache Taxonomy)

const (
	// RevokedTokenPrefix namespaces revoked access-token digests in Redis and Badger.
	RevokedTokenPrefix = "auth:revoked:"
)

// # Event Queues

const (
	QueueUserRegistered         = "user.registered"
	QueuePasswordResetRequested = "password.reset_requested"
)
