// Package handler implements the HTTP layer of the atelier API.
//
// The API is a named-call surface rather than a REST one: clients POST
// to /api/invoke with a method name and positional arguments, matching
// the IPC surface the desktop client speaks. Each method maps to one
// service operation.
//
// # Error Policy
//
// Read methods degrade on storage failure: the error is logged and an
// empty result (empty list, null, or zeroed stats) is returned with
// status 200, so a damaged database renders as an empty shop instead of
// an error page. Write methods propagate their errors as JSON with a
// non-2xx status; validation rejections return 400, everything else 500.
//
// # Server-Sent Events
//
// The /events endpoint streams change events via SSE, letting clients
// refresh views as writes land.
//
// # Export
//
// /api/export streams a full-dataset backup as JSON or YAML.
//
// Middleware provides panic recovery, CORS support, and request logging.
package handler
