package login

import (
	"encoding/json"
	"errors"
	c "gatekeeper/internal/core/domain/common"
	e "gatekeeper/internal/core/domain/errors"
	"gatekeeper/internal/core/domain/user"
	"gatekeeper/internal/core/services"
	login "gatekeeper/internal/core/services/log_in"
	"gatekeeper/internal/http/handlers/auth"
	"gatekeeper/internal/http/handlers/response"
	"io"
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type Handler struct {
	service         services.Service[login.Input, login.Result]
	sessionDuration time.Duration
}

func New(
	service services.Service[login.Input, login.Result],
	sessionDuration time.Duration,
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service, sessionDuration: sessionDuration}
}

type Input struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Result struct {
	Token string        `json:"token"`
	User  response.User `json:"user"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Email, validation.Required, is.Email, validation.Length(0, 512)),
		validation.Field(&i.Password, validation.Required, validation.Length(0, 512)),
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
		login.Input{Email: c.NewEmail(input.Email), Password: user.RawPassword(input.Password)},
	)
	if errors.Is(err, user.ErrInvalidCredentials) {
		response.RenderError(rw, "invalid credentials", http.StatusUnauthorized)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	http.SetCookie(rw, &http.Cookie{
		Name:     auth.AUTH_TOKEN_COOKIE,
		Value:    string(result.Token),
		Path:     "/",
		MaxAge:   int(h.sessionDuration.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	u := response.User{}
	u.FromDomainUser(result.User)
	response.Render(rw, Result{Token: string(result.Token), User: u}, http.StatusOK)
}
