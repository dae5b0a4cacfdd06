// Package reqctx carries request-scoped metadata through context.Context.
//
// The HTTP request id middleware stores a RequestMeta on every request's
// context; services and the log handler read it back:
//
//	meta, ok := reqctx.RequestMetaFromContext(ctx)
//	rid := reqctx.RequestIDFromContext(ctx)
package reqctx
