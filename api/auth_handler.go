package api

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site-backend/auth"
	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
)

// invalidCredentials is deliberately identical for unknown usernames
// and wrong passwords, so the login endpoint cannot be used to
// enumerate accounts.
const invalidCredentials = "Invalid credentials"

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	tokens    *auth.TokenService
	userRepo  *database.UserRepo
}

func newAuthHandler(tokens *auth.TokenService, userRepo *database.UserRepo, development bool) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger, development),
		logger:    logger,
		tokens:    tokens,
		userRepo:  userRepo,
	}
}

// LoginRequest carries the credentials submitted to POST /auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is the payload returned on successful login.
type LoginResponse struct {
	Token        string            `json:"token"`
	RefreshToken string            `json:"refreshToken"`
	User         models.PublicUser `json:"user"`
}

// RefreshRequest carries the refresh token presented to POST /auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := decodeAndValidate(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		user, err := h.userRepo.FindByUsername(req.Username)
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError(invalidCredentials))
			return
		}

		if !auth.CheckPassword(user.PasswordHash, req.Password) {
			h.responder.WriteError(w, errs.NewUnauthorizedError(invalidCredentials))
			return
		}

		accessToken, err := h.tokens.IssueAccessToken(user)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to issue access token", err))
			return
		}
		refreshToken, err := h.tokens.IssueRefreshToken(user)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to issue refresh token", err))
			return
		}

		h.logger.Info().Str("username", user.Username).Msg("user logged in")
		h.responder.WriteJSON(w, LoginResponse{
			Token:        accessToken,
			RefreshToken: refreshToken,
			User:         user.Public(),
		})
	}
}

// refresh validates a refresh token, re-checks that the user still
// exists and issues a new access token only. Refresh tokens are never
// rotated here.
func (h authHandler) refresh() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RefreshRequest
		if err := decodeAndValidate(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		claims, err := h.tokens.VerifyRefresh(req.RefreshToken)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrTokenExpired):
				h.responder.WriteError(w, errs.NewExpiredTokenError())
			case errors.Is(err, auth.ErrTokenMalformed):
				h.responder.WriteError(w, errs.NewMalformedTokenError())
			default:
				h.responder.WriteError(w, errs.NewInvalidTokenError())
			}
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			h.responder.WriteError(w, errs.NewInvalidTokenError())
			return
		}

		user, err := h.userRepo.FindByID(userID)
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("User no longer exists"))
			return
		}

		accessToken, err := h.tokens.IssueAccessToken(user)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to issue access token", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{"token": accessToken})
	}
}

// logout is a stateless acknowledgement: tokens are pure JWTs with no
// server-side session, so discarding them is the client's job.
func (h authHandler) logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, MessageResponse{Message: "Logged out"})
	}
}

func (h authHandler) me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		user, err := h.userRepo.FindByID(userID)
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("User no longer exists"))
			return
		}

		h.responder.WriteJSON(w, map[string]any{"user": user.Public()})
	}
}

// verify echoes the decoded claims back so the client can confirm a
// stored token is still usable without triggering a data fetch.
func (h authHandler) verify() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := ctxGetClaims(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		userID, _ := claims.UserID()
		h.responder.WriteJSON(w, map[string]any{
			"valid": true,
			"user": models.PublicUser{
				ID:       userID,
				Username: claims.Username,
				Role:     claims.Role,
			},
		})
	}
}
