package server

import (
	"encoding/json"
	"net/http"

	"github.com/martin/resumeai/internal/server/middleware"
	"github.com/martin/resumeai/internal/types"
)

func (s *Server) handleGetMe(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := s.userService.GetUser(r.Context(), userID)
	if err != nil {
		s.failureResponse(w, err, "failed to load user")
		return
	}

	s.jsonResponse(w, http.StatusOK, user)
}

// updateProfileRequest is the payload for profile updates. Email is fixed at
// registration and cannot be changed here.
type updateProfileRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func (s *Server) handleUpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		verr := &ErrValidation{Field: "name", Message: "required"}
		s.errorResponse(w, HTTPStatus(verr), verr.Error())
		return
	}

	user, err := s.userService.UpdateProfile(r.Context(), userID, req.Name, req.Phone)
	if err != nil {
		s.failureResponse(w, err, "failed to update profile")
		return
	}

	s.jsonResponse(w, http.StatusOK, user)
}

func (s *Server) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req types.UpdatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.authHandler.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	if err := s.userService.UpdatePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		s.failureResponse(w, err, "failed to update password")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "Password updated successfully"})
}

// subscriptionResponse reports the user's effective plan. Users with no
// subscription row are on the free plan.
type subscriptionResponse struct {
	Plan   string `json:"plan"`
	Status string `json:"status"`
	IsPro  bool   `json:"isPro"`
}

func (s *Server) handleGetSubscription(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	sub, err := s.db.GetSubscription(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to load subscription")
		return
	}

	resp := subscriptionResponse{Plan: "free", Status: "active"}
	if sub != nil {
		resp.Plan = sub.Plan
		resp.Status = sub.Status
		resp.IsPro = sub.IsPro()
	}

	s.jsonResponse(w, http.StatusOK, resp)
}
