// Package handler implements the hostident HTTP API.
//
// # Endpoints
//
//	GET /api/machine           resolved identity (?format=json|yaml)
//	GET /api/machine/history   recorded snapshots, newest first (?limit=N)
//	GET /healthz               "ok" once the identity is resolved
//
// /metrics is mounted by the application from the metrics package.
//
// # Response Format
//
// Success responses return JSON (or YAML when requested). Error responses
// return JSON with {error, details} structure.
//
// Middleware provides panic recovery, request logging, and attaches the
// machine identity to each request context.
package handler
