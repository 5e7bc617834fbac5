// Copyright (c) 2026 Jogakzip. All rights reserved.
// Author: dev@jogakzip.app

// Package ctxkey defines the private key types used to store values in
// [context.Context] without collisions.
package ctxkey

// Key is the unexported-style key type for all context values owned by the platform.
type Key string

const (
	// KeyRequestID stores the per-request correlation ID.
	KeyRequestID Key = "request_id"

	// KeyLogger stores the request-scoped *slog.Logger.
	KeyLogger Key = "logger"
)
