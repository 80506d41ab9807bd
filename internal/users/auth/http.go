// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/tasknest/internal/platform/middleware"
	requestutil "github.com/taibuivan/tasknest/internal/platform/request"
	"github.com/taibuivan/tasknest/internal/platform/respond"
	"github.com/taibuivan/tasknest/internal/platform/sec"
	"github.com/taibuivan/tasknest/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements the /auth HTTP endpoints.
//
// It is a thin transport layer: payload decoding, shape validation and status
// codes. Every rule lives in [Service].
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication routes.
//
// # Endpoints
//   - POST /register        : Creates an account (admins may create any role).
//   - POST /login           : Exchanges credentials for a token pair.
//   - POST /refresh         : Exchanges a refresh token for an access token.
//   - POST /forgot-password : Issues a 15-minute reset token.
//   - POST /reset-password  : Replaces the password using a reset token.
//   - POST /logout          : Revokes the presented access token.
//   - GET  /me              : Returns the current principal.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/refresh", handler.refresh)
	router.Post("/forgot-password", handler.forgotPassword)
	router.Post("/reset-password", handler.resetPassword)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/logout", handler.logout)
		r.Get("/me", handler.me)
	})

	return router
}

// # Request Payloads

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type forgotPasswordResponse struct {
	*ResetGrant
	Message string `json:"message"`
}

/*
Register handles the creation of a new account.

POST /api/v1/auth/register

Request:
  - Body: registerRequest (Username, Email, Password, optional Role)

Response:
  - 201: User: Created account
  - 400: VALIDATION_ERROR
  - 403: FORBIDDEN: role=admin requested by a non-admin
  - 409: DUPLICATE_USERNAME / DUPLICATE_EMAIL
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Register(request.Context(), RegisterInput{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
		Role:     sec.UserRole(input.Role),
	}, requestutil.Principal(request))

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

/*
Login authenticates an account and returns a token pair.

POST /api/v1/auth/login

Request:
  - Body: loginRequest as JSON, or the OAuth2 password form
    (application/x-www-form-urlencoded with username and password)

Response:
  - 200: TokenPair
  - 401: INVALID_CREDENTIALS
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	input, err := decodeLogin(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	pair, err := handler.authService.Login(request.Context(), input.Username, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, pair)
}

// decodeLogin reads JSON or form-encoded credentials.
func decodeLogin(request *http.Request) (loginRequest, error) {
	var input loginRequest

	mediaType, _, _ := mime.ParseMediaType(request.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" {
		if err := request.ParseForm(); err != nil {
			return input, validate.ErrInvalidJSON
		}
		input.Username = request.PostForm.Get(FieldUsername)
		input.Password = request.PostForm.Get(FieldPassword)
		return input, nil
	}

	err := requestutil.DecodeJSON(request, &input)
	return input, err
}

/*
Refresh exchanges a refresh token for a new access token.

POST /api/v1/auth/refresh

Response:
  - 200: AccessGrant
  - 401: INVALID_REFRESH_TOKEN
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	var input refreshRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := (&validate.Validator{}).Required(FieldRefreshToken, input.RefreshToken).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	grant, err := handler.authService.Refresh(request.Context(), input.RefreshToken)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, grant)
}

/*
ForgotPassword issues a password reset token.

POST /api/v1/auth/forgot-password

Response:
  - 200: reset_token, expires_at, message
  - 404: PRINCIPAL_NOT_FOUND
*/
func (handler *Handler) forgotPassword(writer http.ResponseWriter, request *http.Request) {
	var input forgotPasswordRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).Email(FieldEmail, input.Email)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	grant, err := handler.authService.ForgotPassword(request.Context(), input.Email)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, forgotPasswordResponse{
		ResetGrant: grant,
		Message:    "Use this token to reset your password within 15 minutes.",
	})
}

/*
ResetPassword replaces the password using a reset token.

POST /api/v1/auth/reset-password

Response:
  - 200: message
  - 400: INVALID_OR_EXPIRED_TOKEN or VALIDATION_ERROR
  - 404: PRINCIPAL_NOT_FOUND
*/
func (handler *Handler) resetPassword(writer http.ResponseWriter, request *http.Request) {
	var input resetPasswordRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := (&validate.Validator{}).Required(FieldToken, input.Token).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.ResetPassword(request.Context(), input.Token, input.NewPassword); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, messageResponse{Message: "Password reset successfully"})
}

/*
Logout revokes the access token that authenticated this request.

POST /api/v1/auth/logout

Response:
  - 200: message
  - 401: not authenticated
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	if err := handler.authService.Logout(request.Context(), requestutil.AccessToken(request)); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, messageResponse{Message: "Logout successful"})
}

/*
Me returns the authenticated principal.

GET /api/v1/auth/me
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, principal)
}
