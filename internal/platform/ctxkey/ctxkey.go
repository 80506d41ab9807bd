// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxkey defines typed context keys used by middleware and handlers.
//
// # Safety
//
// It is used to store and retrieve per-request values (principal, raw access
// token, request ID, logger). Using a private, unexported type for keys
// prevents collisions with third-party packages that also use context storage.
package ctxkey

// key is an unexported type used for context keys to ensure type safety.
type key string

const (
	// KeyRequestID is the context key for the X-Request-ID correlation value.
	KeyRequestID key = "request_id"

	// KeyPrincipal is the context key for the resolved caller ([*sec.Principal]).
	KeyPrincipal key = "principal"

	// KeyAccessToken is the context key for the raw bearer token of the request.
	KeyAccessToken key = "access_token"

	// KeyLogger is the context key for the per-request [*log/slog.Logger].
	KeyLogger key = "logger"
)
