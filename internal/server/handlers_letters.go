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

// coverLetterResponse is the API representation of a stored cover letter.
type coverLetterResponse struct {
	ID        uuid.UUID       `json:"id"`
	Title     string          `json:"title"`
	Content   json.RawMessage `json:"content"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func toCoverLetterResponse(l *db.CoverLetter) coverLetterResponse {
	return coverLetterResponse{
		ID:        l.ID,
		Title:     l.Title,
		Content:   l.Content,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

// generateCoverLetterRequest is the payload for AI cover letter generation.
type generateCoverLetterRequest struct {
	types.CoverLetterInput
	Title    string `json:"title"`
	Provider string `json:"provider"`
}

// handleGenerateCoverLetter generates cover letter content with an AI
// provider and stores the result. Cover letters are not scored and not
// subject to the free-plan resume cap.
func (s *Server) handleGenerateCoverLetter(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req generateCoverLetterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	content, err := s.gateway.GenerateCoverLetterContent(r.Context(), req.CoverLetterInput, req.Provider)
	if err != nil {
		s.failureResponse(w, err, "failed to generate cover letter, please try again")
		return
	}

	encoded, err := json.Marshal(content)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to encode content")
		return
	}

	title := req.Title
	if title == "" {
		title = "Cover Letter"
		if req.Company != "" {
			title = "Cover Letter - " + req.Company
		}
	}

	id, err := s.db.CreateCoverLetter(r.Context(), userID, title, encoded)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to save cover letter")
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]any{
		"id":      id,
		"title":   title,
		"content": content,
	})
}

// createCoverLetterRequest is the payload for saving an edited cover letter.
type createCoverLetterRequest struct {
	Title   string          `json:"title"`
	Content json.RawMessage `json:"content"`
}

func (s *Server) handleCreateCoverLetter(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req createCoverLetterRequest
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

	id, err := s.db.CreateCoverLetter(r.Context(), userID, req.Title, req.Content)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to save cover letter")
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]uuid.UUID{"id": id})
}

func (s *Server) handleListCoverLetters(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	letters, err := s.db.ListCoverLetters(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to list cover letters")
		return
	}

	responses := make([]coverLetterResponse, 0, len(letters))
	for i := range letters {
		responses = append(responses, toCoverLetterResponse(&letters[i]))
	}

	s.jsonResponse(w, http.StatusOK, map[string][]coverLetterResponse{"coverLetters": responses})
}

func (s *Server) handleGetCoverLetter(w http.ResponseWriter, r *http.Request) {
	letter, ok := s.ownedCoverLetter(w, r)
	if !ok {
		return
	}

	s.jsonResponse(w, http.StatusOK, toCoverLetterResponse(letter))
}

func (s *Server) handleDeleteCoverLetter(w http.ResponseWriter, r *http.Request) {
	letter, ok := s.ownedCoverLetter(w, r)
	if !ok {
		return
	}

	if err := s.db.DeleteCoverLetter(r.Context(), letter.ID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to delete cover letter")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ownedCoverLetter loads the cover letter from the path ID and verifies
// ownership. Letters owned by other users read as not found.
func (s *Server) ownedCoverLetter(w http.ResponseWriter, r *http.Request) (*db.CoverLetter, bool) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return nil, false
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid cover letter ID")
		return nil, false
	}

	letter, err := s.db.GetCoverLetter(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to load cover letter")
		return nil, false
	}
	if letter == nil || letter.UserID != userID {
		notFound := &ErrCoverLetterNotFound{ID: id}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return nil, false
	}

	return letter, true
}
