package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/martin/resumeai/internal/render"
)

// handleRenderResume renders resume form data into a downloadable PDF or
// DOCX document. Missing fields fall back to placeholder text so an empty
// form still produces a complete document.
func (s *Server) handleRenderResume(w http.ResponseWriter, r *http.Request) {
	var req render.DocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	data, err := render.Render(req)
	if err != nil {
		s.failureResponse(w, err, "failed to render document")
		return
	}

	filename := render.Filename(req.PersonalInfo.Name, req.Format)
	w.Header().Set("Content-Type", render.ContentType(req.Format))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Printf("Error writing document response: %v", err)
	}
}
