package middlewares

import "github.com/gin-gonic/gin"

// abortJSON stops the chain with the same error envelope the handlers use.
func abortJSON(ctx *gin.Context, status int, code, message string) {
	body := gin.H{"code": code, "message": message}

	if id := ctx.GetString(CtxRequestID); id != "" {
		body["requestId"] = id
	}

	ctx.AbortWithStatusJSON(status, gin.H{"error": body})
}
