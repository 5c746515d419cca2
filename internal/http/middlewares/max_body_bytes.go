package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MaxBodyBytes caps request bodies at limit bytes; limit <= 0 disables the cap.
// A declared Content-Length over the limit is refused before reading,
// anything else is cut off by the reader and surfaces in BindJSON.
func MaxBodyBytes(limit int64) gin.HandlerFunc {
	if limit <= 0 {
		return func(ctx *gin.Context) { ctx.Next() }
	}

	return func(ctx *gin.Context) {
		if ctx.Request.ContentLength > limit {
			abortJSON(ctx, http.StatusRequestEntityTooLarge, "payload_too_large", "Request body is too large")
			return
		}

		ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, limit)

		ctx.Next()
	}
}
