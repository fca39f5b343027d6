package transport

import (
	"net/http"

	"github.com/muhammadheryan/marketplace/model"
	utilsContext "github.com/muhammadheryan/marketplace/utils/context"
)

// Register handler
// @Summary Register user
// @Description Register a new user
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.RegisterRequest true "Register Request"
// @Success 201 {object} model.Response
// @Failure 400 {object} model.Response
// @Failure 409 {object} model.Response
// @Router /api/auth/register [post]
func (s *RestHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	user, err := s.UserApp.Register(r.Context(), &req)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, model.Response{Message: "User registered successfully", User: user})
}

// Login handler
// @Summary Login user
// @Description Login with email and password and receive a JWT token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Login Request"
// @Success 200 {object} model.Response
// @Failure 400 {object} model.Response
// @Failure 401 {object} model.Response
// @Failure 403 {object} model.Response
// @Router /api/auth/login [post]
func (s *RestHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	res, err := s.UserApp.Login(r.Context(), &req)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.Response{Message: "Login successful", Token: res.Token, User: res.User})
}

// Verify handler
// @Summary Verify token
// @Description Returns the user the bearer token belongs to
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.Response
// @Failure 401 {object} model.Response
// @Router /api/auth/verify [get]
func (s *RestHandler) Verify(w http.ResponseWriter, r *http.Request) {
	user, err := s.UserApp.GetProfile(r.Context(), callerID(r))
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.Response{Data: user})
}

// Logout handler
// @Summary Logout
// @Description Revokes the session of the bearer token
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.Response
// @Failure 401 {object} model.Response
// @Router /api/auth/logout [post]
func (s *RestHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := utilsContext.GetSessionID(r.Context())
	if err := s.UserApp.Logout(r.Context(), sessionID); err != nil {
		s.writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.Response{Message: "Logged out successfully"})
}

func callerID(r *http.Request) uint64 {
	id, _ := utilsContext.GetUserID(r.Context())
	return id
}
