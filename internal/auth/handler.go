package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/shopgate/internal/api"
	"github.com/dmitrymomot/shopgate/pkg/logger"
)

// Handler exposes the auth flow over HTTP:
//
//	POST /signup       {username, password} -> 201
//	POST /login-step1  {username, password} -> 200 image/png provisioning QR
//	POST /login-step2  {username, otp}      -> 200 {"token": ...}
type Handler struct {
	svc *Service
	log *slog.Logger
}

// NewHandler creates the auth HTTP handler.
func NewHandler(svc *Service, log *slog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Register mounts the auth routes on the given router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/signup", h.signup)
	r.Post("/login-step1", h.loginStep1)
	r.Post("/login-step2", h.loginStep2)
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type otpRequest struct {
	Username string `json:"username"`
	OTP      string `json:"otp"`
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := api.Decode(r, &req); err != nil {
		api.Error(w, http.StatusBadRequest, "missing fields")
		return
	}

	if err := h.svc.Signup(r.Context(), req.Username, req.Password); err != nil {
		switch {
		case errors.Is(err, ErrMissingFields):
			api.Error(w, http.StatusBadRequest, "missing fields")
		case errors.Is(err, ErrUsernameTaken):
			api.Error(w, http.StatusConflict, "user already exists")
		default:
			h.log.ErrorContext(r.Context(), "signup failed", logger.Error(err), logger.Component("auth"))
			api.Error(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	api.Message(w, http.StatusCreated, "User registered successfully")
}

func (h *Handler) loginStep1(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := api.Decode(r, &req); err != nil {
		api.Error(w, http.StatusBadRequest, "missing fields")
		return
	}

	img, err := h.svc.PasswordLogin(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields):
			api.Error(w, http.StatusBadRequest, "missing fields")
		case errors.Is(err, ErrInvalidCredentials):
			api.Error(w, http.StatusUnauthorized, "invalid credentials")
		default:
			h.log.ErrorContext(r.Context(), "password stage failed", logger.Error(err), logger.Component("auth"))
			api.Error(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	api.PNG(w, http.StatusOK, img)
}

func (h *Handler) loginStep2(w http.ResponseWriter, r *http.Request) {
	var req otpRequest
	if err := api.Decode(r, &req); err != nil {
		api.Error(w, http.StatusBadRequest, "missing fields")
		return
	}

	token, err := h.svc.OTPLogin(r.Context(), req.Username, req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields):
			api.Error(w, http.StatusBadRequest, "missing fields")
		case errors.Is(err, ErrUserNotFound):
			api.Error(w, http.StatusNotFound, "user not found")
		case errors.Is(err, ErrInvalidOTP), errors.Is(err, ErrOTPAlreadyUsed):
			api.Error(w, http.StatusUnauthorized, "invalid OTP")
		default:
			h.log.ErrorContext(r.Context(), "OTP stage failed", logger.Error(err), logger.Component("auth"))
			api.Error(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	api.JSON(w, http.StatusOK, map[string]string{"token": token})
}
