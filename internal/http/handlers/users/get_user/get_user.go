package getuser

import (
	"errors"
	e "gatekeeper/internal/core/domain/errors"
	"gatekeeper/internal/core/domain/user"
	"gatekeeper/internal/core/services"
	service "gatekeeper/internal/core/services/get_user"
	"gatekeeper/internal/http/handlers/response"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service services.Service[service.Input, service.Result]
}

func New(
	service services.Service[service.Input, service.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Result struct {
	User response.User `json:"user"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	rawUserID := chi.URLParam(r, "userID")
	userID, err := strconv.ParseInt(rawUserID, 10, 64)
	if err != nil {
		response.RenderError(rw, "invalid user ID", http.StatusBadRequest)
		return
	}

	result, err := h.service.Run(
		r.Context(),
		service.Input{UserID: user.ID(userID)},
	)
	if errors.Is(err, user.ErrInvalidSessionToken) {
		response.RenderUnauthorized(rw)
		return
	}
	if errors.Is(err, user.ErrPermissionDenied) {
		response.RenderForbidden(rw)
		return
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		response.RenderError(rw, "user does not exist", http.StatusNotFound)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	u := response.User{}
	u.FromDomainUser(result.User)
	response.Render(rw, Result{User: u}, http.StatusOK)
}
