package handlers

import (
	"net/http"

	"github.com/geocoder89/userhub/internal/domain/user"
	"github.com/geocoder89/userhub/internal/http/middlewares"
	"github.com/geocoder89/userhub/internal/observability"
	"github.com/gin-gonic/gin"
)

// error codes carried in the JSON error envelope
const (
	CodeInvalidRequest   = "invalid_request"
	CodeInvalidID        = "invalid_id"
	CodeValidationFailed = "validation_failed"
	CodeNotFound         = "not_found"
	CodeInternal         = "internal_error"
	CodeStoreUnavailable = "store_unavailable"
)

type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
	Details   any    `json:"details,omitempty"`
}

func requestIDFrom(ctx *gin.Context) string {
	if id := ctx.GetString(middlewares.CtxRequestID); id != "" {
		return id
	}

	return observability.RequestIDFromContext(ctx.Request.Context())
}

// RespondError writes {"error": APIError} and aborts the chain.
func RespondError(ctx *gin.Context, status int, code, message string, details any) {
	ctx.AbortWithStatusJSON(status, gin.H{
		"error": APIError{
			Code:      code,
			Message:   message,
			RequestID: requestIDFrom(ctx),
			Details:   details,
		},
	})
}

func RespondBadRequest(ctx *gin.Context, message string, details any) {
	RespondError(ctx, http.StatusBadRequest, CodeInvalidRequest, message, details)
}

func RespondInvalidID(ctx *gin.Context) {
	RespondError(ctx, http.StatusBadRequest, CodeInvalidID, "User id is malformed", nil)
}

func RespondValidation(ctx *gin.Context, ve *user.ValidationError) {
	RespondError(ctx, http.StatusBadRequest, CodeValidationFailed, "User failed schema validation", gin.H{"fields": ve.Fields})
}

func RespondNotFound(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusNotFound, CodeNotFound, message, nil)
}

func RespondInternal(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusInternalServerError, CodeInternal, message, nil)
}

func RespondUnavailable(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusServiceUnavailable, CodeStoreUnavailable, message, nil)
}
