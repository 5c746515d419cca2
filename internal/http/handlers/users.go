package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/geocoder89/userhub/internal/domain/user"
	"github.com/geocoder89/userhub/internal/users"
	"github.com/gin-gonic/gin"
)

type UserService interface {
	CreateUser(ctx context.Context, req user.CreateUserRequest) (users.CreateResult, error)
	GetUser(ctx context.Context, id string) (user.User, error)
	ListUsers(ctx context.Context) ([]user.User, error)
	UpdateUser(ctx context.Context, id string, req user.UpdateUserRequest) error
	DeleteUser(ctx context.Context, id string) error
}

const (
	msgUserUpdated  = "user updated successfully"
	msgUserDeleted  = "user deleted successfully"
	msgUserNotFound = "User not found"
	msgInvalidID    = "Invalid user id"
	msgUnavailable  = "Service unavailable"
)

type UsersHandler struct {
	svc     UserService
	log     *slog.Logger
	timeout time.Duration
}

func NewUsersHandler(svc UserService, log *slog.Logger, timeout time.Duration) *UsersHandler {
	if log == nil {
		log = slog.Default()
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}

	return &UsersHandler{svc: svc, log: log, timeout: timeout}
}

// storeContext bounds the single store round trip of a request.
func (h *UsersHandler) storeContext(ctx *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx.Request.Context(), h.timeout)
}

func (h *UsersHandler) CreateUser(ctx *gin.Context) {
	var req user.CreateUserRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := h.storeContext(ctx)
	defer cancel()

	res, err := h.svc.CreateUser(cctx, req)
	if err != nil {
		var ve *user.ValidationError

		switch {
		case errors.As(err, &ve):
			RespondValidation(ctx, ve)
		case errors.Is(err, users.ErrHashing):
			h.fail(ctx, "create", err)
			RespondInternal(ctx, "Could not create user")
		default:
			h.fail(ctx, "create", err)
			RespondUnavailable(ctx, "Could not create user")
		}
		return
	}

	ctx.JSON(http.StatusOK, res)
}

func (h *UsersHandler) GetUser(ctx *gin.Context) {
	id := ctx.Param("id")

	cctx, cancel := h.storeContext(ctx)
	defer cancel()

	u, err := h.svc.GetUser(cctx, id)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidID):
			RespondInvalidID(ctx)
		case errors.Is(err, user.ErrNotFound):
			RespondNotFound(ctx, msgUserNotFound)
		default:
			h.fail(ctx, "get", err)
			RespondUnavailable(ctx, "Could not fetch user")
		}
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, u)
}

func (h *UsersHandler) ListUsers(ctx *gin.Context) {
	cctx, cancel := h.storeContext(ctx)
	defer cancel()

	list, err := h.svc.ListUsers(cctx)
	if err != nil {
		h.fail(ctx, "list", err)
		RespondUnavailable(ctx, "Could not list users")
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, list)
}

// UpdateUser and DeleteUser answer in plain text.
func (h *UsersHandler) UpdateUser(ctx *gin.Context) {
	id := ctx.Param("id")

	var req user.UpdateUserRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := h.storeContext(ctx)
	defer cancel()

	err := h.svc.UpdateUser(cctx, id, req)
	if err != nil {
		h.respondTextError(ctx, "update", err)
		return
	}

	ctx.String(http.StatusOK, msgUserUpdated)
}

func (h *UsersHandler) DeleteUser(ctx *gin.Context) {
	id := ctx.Param("id")

	cctx, cancel := h.storeContext(ctx)
	defer cancel()

	err := h.svc.DeleteUser(cctx, id)
	if err != nil {
		h.respondTextError(ctx, "delete", err)
		return
	}

	ctx.String(http.StatusOK, msgUserDeleted)
}

func (h *UsersHandler) respondTextError(ctx *gin.Context, op string, err error) {
	var ve *user.ValidationError

	switch {
	case errors.Is(err, user.ErrInvalidID):
		ctx.String(http.StatusBadRequest, msgInvalidID)
	case errors.Is(err, user.ErrNotFound):
		ctx.String(http.StatusNotFound, msgUserNotFound)
	case errors.As(err, &ve):
		ctx.String(http.StatusBadRequest, ve.Error())
	case errors.Is(err, users.ErrHashing):
		h.fail(ctx, op, err)
		ctx.String(http.StatusInternalServerError, "Could not "+op+" user")
	default:
		h.fail(ctx, op, err)
		ctx.String(http.StatusServiceUnavailable, msgUnavailable)
	}
}

func (h *UsersHandler) fail(ctx *gin.Context, op string, err error) {
	_ = ctx.Error(err)

	h.log.ErrorContext(ctx.Request.Context(), "user operation failed",
		"op", op,
		"id", ctx.Param("id"),
		"err", err,
	)
}
