package middlewares

import "github.com/gin-gonic/gin"

// responses are JSON, plain text or the static greeting, none of which load
// scripts or assets
const contentSecurityPolicy = "default-src 'none'; frame-ancestors 'none'"

var securityHeaders = [][2]string{
	{"X-Content-Type-Options", "nosniff"},
	{"X-Frame-Options", "DENY"},
	{"Referrer-Policy", "no-referrer"},
	{"Cross-Origin-Resource-Policy", "same-origin"},
	{"Content-Security-Policy", contentSecurityPolicy},
	// user documents may be cached but must be revalidated against the ETag
	{"Cache-Control", "no-cache"},
}

func SecurityHeaders() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		h := ctx.Writer.Header()
		for _, kv := range securityHeaders {
			h.Set(kv[0], kv[1])
		}

		ctx.Next()
	}
}
