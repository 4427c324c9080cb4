package logout

import (
	"gatekeeper/internal/http/handlers/auth"
	"gatekeeper/internal/http/handlers/response"
	"net/http"
)

// Handler clears the session cookie. Tokens are stateless, nothing is
// revoked server-side; the client must discard its copy.
type Handler struct{}

func New() *Handler {
	return &Handler{}
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	if _, ok := auth.ParseToken(r); !ok {
		response.RenderUnauthorized(rw)
		return
	}
	http.SetCookie(rw, &http.Cookie{
		Name:     auth.AUTH_TOKEN_COOKIE,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	response.Render(rw, struct{}{}, http.StatusOK)
}
