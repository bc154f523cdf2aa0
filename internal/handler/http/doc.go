// Package http implements the HTTP transport layer of the vault server.
//
// It exposes route wiring, request handlers and middleware of the REST API.
// Request tracing, access logging, rate limiting and bearer authentication
// run here; the authenticated user is then passed explicitly to the service
// layer, which owns every encryption decision.
package http
