package server

import (
	"net/http"
)

// providerInfo is the API representation of a configured AI provider.
type providerInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Default bool   `json:"default"`
}

// handleListProviders returns the providers whose credentials are configured
// in the current environment, in registry order. Unconfigured providers are
// not listed.
func (s *Server) handleListProviders(w http.ResponseWriter, _ *http.Request) {
	defaultID := s.registry.DefaultProvider().ID

	providers := make([]providerInfo, 0)
	for _, desc := range s.registry.AvailableProviders() {
		providers = append(providers, providerInfo{
			ID:      desc.ID,
			Name:    desc.Name,
			Default: desc.ID == defaultID,
		})
	}

	s.jsonResponse(w, http.StatusOK, map[string][]providerInfo{"providers": providers})
}
