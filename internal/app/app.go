package app

import (
	"fmt"
	"gatekeeper/internal/app/deps"
	"gatekeeper/internal/app/services"
	"gatekeeper/internal/http/handlers/auth"
	changepassword "gatekeeper/internal/http/handlers/auth/change_password"
	login "gatekeeper/internal/http/handlers/auth/log_in"
	logout "gatekeeper/internal/http/handlers/auth/log_out"
	me "gatekeeper/internal/http/handlers/auth/me"
	signup "gatekeeper/internal/http/handlers/auth/sign_up"
	confirmpasswordreset "gatekeeper/internal/http/handlers/reset/confirm_password_reset"
	requestpasswordreset "gatekeeper/internal/http/handlers/reset/request_password_reset"
	getuser "gatekeeper/internal/http/handlers/users/get_user"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	authRouter := chi.NewRouter()
	authRouter.Method(http.MethodPost, "/signup", signup.New(s.SignUp))
	authRouter.Method(http.MethodPost, "/login", login.New(s.LogIn, deps.Config.SessionValidDuration))
	authRouter.Method(http.MethodPost, "/logout", logout.New())
	authRouter.With(auth.SetAuthTokenToContext).Method(http.MethodGet, "/me", me.New(s.Me))
	authRouter.With(auth.SetAuthTokenToContext).Method(
		http.MethodPut,
		"/password",
		changepassword.New(s.ChangePassword),
	)

	resetRouter := chi.NewRouter()
	resetRouter.Method(http.MethodPost, "/request", requestpasswordreset.New(s.RequestPasswordReset))
	resetRouter.Method(http.MethodPost, "/confirm", confirmpasswordreset.New(s.ConfirmPasswordReset))

	usersRouter := chi.NewRouter()
	usersRouter.Use(auth.SetAuthTokenToContext)
	usersRouter.Method(http.MethodGet, "/{userID:[0-9]+}", getuser.New(s.GetUser))

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	router.Mount("/auth", authRouter)
	router.Mount("/reset", resetRouter)
	router.Mount("/users", usersRouter)

	return &http.Server{
		Handler:           router,
		Addr:              fmt.Sprintf("0.0.0.0:%d", deps.Config.Port),
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      5 * time.Second,
		IdleTimeout:       5 * time.Second,
	}
}
