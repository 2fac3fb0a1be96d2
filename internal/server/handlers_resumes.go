package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/martin/resumeai/internal/db"
	"github.com/martin/resumeai/internal/server/middleware"
	"github.com/martin/resumeai/internal/types"
)

// resumeResponse is the API representation of a stored resume.
type resumeResponse struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	Content     json.RawMessage `json:"content"`
	AIGenerated bool            `json:"aiGenerated"`
	AIScore     int             `json:"aiScore,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func toResumeResponse(r *db.Resume) resumeResponse {
	return resumeResponse{
		ID:          r.ID,
		Title:       r.Title,
		Content:     r.Content,
		AIGenerated: r.AIGenerated,
		AIScore:     r.AIScore,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// generateResumeRequest is the payload for AI resume generation. The form
// input is embedded; Provider is optional and defaults to the registry's
// default provider.
type generateResumeRequest struct {
	types.ResumeInput
	Title    string `json:"title"`
	Provider string `json:"provider"`
}

// handleGenerateResume generates resume content with an AI provider, scores
// it, and stores the result. Free-plan users are capped at a fixed number of
// AI-generated resumes.
func (s *Server) handleGenerateResume(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req generateResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// Plan gate: pro subscribers generate without limit.
	sub, err := s.db.GetSubscription(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to check subscription")
		return
	}
	if !sub.IsPro() {
		count, err := s.db.CountAIResumes(r.Context(), userID)
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "failed to check usage")
			return
		}
		if count >= freePlanResumeLimit {
			limitErr := &ErrPlanLimitExceeded{Limit: freePlanResumeLimit}
			s.errorResponse(w, HTTPStatus(limitErr), limitErr.Error())
			return
		}
	}

	generated, err := s.gateway.GenerateResumeContent(r.Context(), req.ResumeInput, req.Provider)
	if err != nil {
		s.failureResponse(w, err, "failed to generate resume, please try again")
		return
	}

	providerID := req.Provider
	if providerID == "" {
		providerID = s.registry.DefaultProvider().ID
	}

	// The stored record keeps the form input and the provider alongside the
	// generated content so the resume can be regenerated or re-rendered later.
	content, err := json.Marshal(map[string]any{
		"personalInfo":     req.PersonalInfo,
		"experiences":      req.Experiences,
		"education":        req.Education,
		"skills":           req.Skills,
		"generatedContent": generated.Content,
		"aiProvider":       providerID,
	})
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to encode content")
		return
	}

	title := req.Title
	if title == "" {
		title = "AI Generated Resume"
	}

	id, err := s.db.CreateResume(r.Context(), userID, title, content, true, generated.Score)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to save resume")
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]any{
		"id":      id,
		"title":   title,
		"content": generated.Content,
		"score":   generated.Score,
	})
}

// createResumeRequest is the payload for saving a manually edited resume.
type createResumeRequest struct {
	Title   string          `json:"title"`
	Content json.RawMessage `json:"content"`
}

func (s *Server) handleCreateResume(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req createResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" {
		verr := &ErrValidation{Field: "title", Message: "required"}
		s.errorResponse(w, HTTPStatus(verr), verr.Error())
		return
	}
	if len(req.Content) == 0 {
		req.Content = json.RawMessage("{}")
	}

	id, err := s.db.CreateResume(r.Context(), userID, req.Title, req.Content, false, 0)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to save resume")
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]uuid.UUID{"id": id})
}

func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	resumes, err := s.db.ListResumes(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to list resumes")
		return
	}

	responses := make([]resumeResponse, 0, len(resumes))
	for i := range resumes {
		responses = append(responses, toResumeResponse(&resumes[i]))
	}

	s.jsonResponse(w, http.StatusOK, map[string][]resumeResponse{"resumes": responses})
}

func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	_, resume, ok := s.ownedResume(w, r)
	if !ok {
		return
	}

	s.jsonResponse(w, http.StatusOK, toResumeResponse(resume))
}

func (s *Server) handleUpdateResume(w http.ResponseWriter, r *http.Request) {
	_, resume, ok := s.ownedResume(w, r)
	if !ok {
		return
	}

	var req createResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" {
		req.Title = resume.Title
	}
	if len(req.Content) == 0 {
		req.Content = resume.Content
	}

	if err := s.db.UpdateResume(r.Context(), resume.ID, req.Title, req.Content); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to update resume")
		return
	}

	updated, err := s.db.GetResume(r.Context(), resume.ID)
	if err != nil || updated == nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to load updated resume")
		return
	}

	s.jsonResponse(w, http.StatusOK, toResumeResponse(updated))
}

func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	_, resume, ok := s.ownedResume(w, r)
	if !ok {
		return
	}

	if err := s.db.DeleteResume(r.Context(), resume.ID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to delete resume")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ownedResume loads the resume from the path ID and verifies the
// authenticated user owns it. Resumes owned by other users read as not
// found, never as forbidden.
func (s *Server) ownedResume(w http.ResponseWriter, r *http.Request) (uuid.UUID, *db.Resume, bool) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return uuid.Nil, nil, false
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid resume ID")
		return uuid.Nil, nil, false
	}

	resume, err := s.db.GetResume(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to load resume")
		return uuid.Nil, nil, false
	}
	if resume == nil || resume.UserID != userID {
		notFound := &ErrResumeNotFound{ID: id}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return uuid.Nil, nil, false
	}

	return userID, resume, true
}
