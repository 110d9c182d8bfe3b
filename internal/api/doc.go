// ABOUTME: Package documentation for the HTTP API layer
// ABOUTME: Routes, request/response shapes, and error body conventions

// Package api exposes the set tracker over HTTP.
//
// Authentication endpoints are public; every other route sits behind the
// bearer-token middleware and operates on the authenticated principal's own
// data. Error responses carry a JSON body of the form {"detail": ...} where
// detail is a string, or a list of per-field messages for validation
// failures.
package api
