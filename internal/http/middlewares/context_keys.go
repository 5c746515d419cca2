package middlewares

// CtxRequestID is the gin context key holding the X-Request-Id value.
// The same id is also attached to the request context for logging.
const CtxRequestID = "request_id"
