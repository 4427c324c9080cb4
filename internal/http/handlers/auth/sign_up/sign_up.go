package signup

import (
	"encoding/json"
	"errors"
	c "gatekeeper/internal/core/domain/common"
	e "gatekeeper/internal/core/domain/errors"
	"gatekeeper/internal/core/domain/user"
	"gatekeeper/internal/core/services"
	signup "gatekeeper/internal/core/services/sign_up"
	"gatekeeper/internal/http/handlers/response"
	"io"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type Handler struct {
	service services.Service[signup.Input, signup.Result]
}

func New(
	service services.Service[signup.Input, signup.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type Result struct {
	User response.User `json:"user"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Email, validation.Required, is.Email, validation.Length(0, 512)),
		validation.Field(&i.Name, validation.Required, validation.Length(0, 256)),
		validation.Field(&i.Password, validation.Required, validation.Length(8, 256)),
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

	result, err := h.service.Run(
		r.Context(),
		signup.Input{
			Email:    c.NewEmail(input.Email),
			Name:     input.Name,
			Password: user.RawPassword(input.Password),
		},
	)
	if errors.Is(err, user.ErrEmailAlreadyExists) {
		response.RenderError(rw, "email already exists", http.StatusConflict)
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
