// Package server exposes the bot over HTTP.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
//
// # Webhook
//
// [WebhookHandler] accepts channel activities on POST /api/messages (and POST /):
//   - message : acknowledged with 202, then dispatched and delivered on a background goroutine
//   - contactRelationUpdate with action "add" : a greeting is delivered the same way
//   - anything else : 200 and ignored
//
// Replies leave through a [Replier], normally a connector client. Each delivery runs under its own timeout,
// detached from the request, and [Server.Shutdown] waits for in-flight deliveries.
//
// # Middleware
//
//   - [RequestID] : reuses or assigns an X-Request-ID
//   - [Logging] : one structured log line per request
//   - [BearerSecret] : optional shared-secret check on the webhook
//   - [Recover] : turns a handler panic into a 500
package server
