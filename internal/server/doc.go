// Package server runs the HTTP server and the background workers of the
// vault and stops both gracefully on SIGTERM, SIGINT or SIGQUIT.
package server
