package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireJSON answers 415 for POST/PUT/PATCH requests whose Content-Type
// is not application/json. Parameters such as charset are ignored.
func RequireJSON() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		switch ctx.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
			if ctx.ContentType() != gin.MIMEJSON {
				abortJSON(ctx, http.StatusUnsupportedMediaType, "unsupported_media_type", "Content-Type must be application/json")
				return
			}
		}

		ctx.Next()
	}
}
