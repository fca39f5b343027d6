package transport

import (
	"net/http"

	"github.com/muhammadheryan/marketplace/model"
)

// GetMe handler
// @Summary Current user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.Response
// @Failure 401 {object} model.Response
// @Router /api/users/me [get]
func (s *RestHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	user, err := s.UserApp.GetProfile(r.Context(), callerID(r))
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.Response{Data: user})
}

// UpdateMe handler
// @Summary Update current user
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} model.Response
// @Failure 400 {object} model.Response
// @Failure 409 {object} model.Response
// @Router /api/users/me [put]
func (s *RestHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	user, err := s.UserApp.UpdateProfile(r.Context(), callerID(r), &req)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.Response{Message: "Profile updated successfully", Data: user})
}

// DeleteMe handler
// @Summary Delete current user
// @Description Deletes the account and its listings and revokes every session of the user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.Response
// @Failure 401 {object} model.Response
// @Router /api/users/me [delete]
func (s *RestHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	if err := s.UserApp.DeleteAccount(r.Context(), callerID(r)); err != nil {
		s.writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.Response{Message: "Account deleted successfully"})
}

// ChangePassword handler
// @Summary Change password
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.ChangePasswordRequest true "Passwords"
// @Success 200 {object} model.Response
// @Failure 400 {object} model.Response
// @Router /api/users/me/password [put]
func (s *RestHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req model.ChangePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	if err := s.UserApp.ChangePassword(r.Context(), callerID(r), &req); err != nil {
		s.writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.Response{Message: "Password changed successfully"})
}
