// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors of the transport layer. Callers can match against them with
// [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is not of the form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrNoUserInContext is returned by handlers behind the auth middleware
	// when the request context carries no user.
	ErrNoUserInContext = errors.New("no authenticated user in request context")

	// ErrUnknownKind is returned for an item kind path segment that names no
	// item kind.
	ErrUnknownKind = errors.New("unknown item kind")

	// ErrInvalidItemID is returned for an item id path segment that is not a
	// positive integer.
	ErrInvalidItemID = errors.New("invalid item id")

	// ErrInvalidJSON is returned for request bodies that can not be decoded.
	ErrInvalidJSON = errors.New("invalid JSON was passed")

	// ErrTooManyRequests is returned when a client exceeds its rate limit.
	ErrTooManyRequests = errors.New("too many requests")
)
