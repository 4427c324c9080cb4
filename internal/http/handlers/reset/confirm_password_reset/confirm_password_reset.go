package confirmpasswordreset

import (
	"encoding/json"
	"errors"
	e "gatekeeper/internal/core/domain/errors"
	"gatekeeper/internal/core/domain/user"
	"gatekeeper/internal/core/services"
	service "gatekeeper/internal/core/services/confirm_password_reset"
	"gatekeeper/internal/http/handlers/response"
	"io"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
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

type Input struct {
	Token       string `json:"token"`
	UserID      int64  `json:"user_id"`
	NewPassword string `json:"new_password"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Token, validation.Required, validation.Length(0, 1024)),
		validation.Field(&i.UserID, validation.Required, validation.Min(1)),
		validation.Field(&i.NewPassword, validation.Required, validation.Length(8, 256)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}

	_, err := h.service.Run(
		r.Context(),
		service.Input{
			UserID:      user.ID(input.UserID),
			Secret:      user.RawResetSecret(input.Token),
			NewPassword: user.RawPassword(input.NewPassword),
		},
	)
	if errors.Is(err, user.ErrUserDoesNotExist) {
		response.RenderError(rw, "user does not exist", http.StatusBadRequest)
		return
	}
	if errors.Is(err, user.ErrInvalidOrExpiredResetToken) {
		response.RenderError(rw, "invalid or expired token", http.StatusBadRequest)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	response.Render(rw, struct{}{}, http.StatusOK)
}
