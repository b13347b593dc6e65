package service

import (
	"errors"
	"net/http"

	"splitledger/internal/auth"
	"splitledger/internal/calculator"
	"splitledger/internal/storage"
	"splitledger/pkg/serrs"
)

// AuthService handles signup and login.
type AuthService struct {
	store         storage.Store
	authenticator auth.Authenticator
	jwt           *auth.JWTManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(store storage.Store, authenticator auth.Authenticator, jwt *auth.JWTManager) *AuthService {
	return &AuthService{store: store, authenticator: authenticator, jwt: jwt}
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type signupResponse struct {
	Token            string               `json:"token"`
	PreviousExpenses *calculator.UserView `json:"previous_expenses"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup registers a new user and returns a session token together with any
// activity recorded against the email before the account existed.
func (s *AuthService) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Email == "" || req.Name == "" {
		writeError(w, serrs.With(serrs.ErrValidation, "email and name are required"))
		return
	}

	user, err := s.authenticator.Register(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailExists):
			writeError(w, serrs.Wrap(serrs.ErrValidation, err, "email already registered"))
		case errors.Is(err, auth.ErrWeakPassword):
			writeError(w, serrs.Wrap(serrs.ErrValidation, err, "%s", err))
		default:
			writeError(w, serrs.Wrap(serrs.ErrStore, err, "failed to register user"))
		}
		return
	}

	token, err := s.jwt.Generate(user.Email)
	if err != nil {
		writeError(w, serrs.Wrap(serrs.ErrStore, err, "failed to issue token"))
		return
	}

	// Expenses may reference an email before it signs up; surface them so the
	// new account starts with its real balance.
	previous, err := userView(r.Context(), s.store, user.Email)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, signupResponse{Token: token, PreviousExpenses: previous})
}

// Login authenticates a user and returns a session token.
func (s *AuthService) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, serrs.With(serrs.ErrValidation, "email and password are required"))
		return
	}

	user, err := s.authenticator.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, serrs.Wrap(serrs.ErrAuth, err, "invalid email or password"))
		return
	}

	token, err := s.jwt.Generate(user.Email)
	if err != nil {
		writeError(w, serrs.Wrap(serrs.ErrStore, err, "failed to issue token"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}
