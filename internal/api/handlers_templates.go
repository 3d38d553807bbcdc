package api

import (
	"encoding/json"
	"net/http"
)

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"templates": s.orchestrator.Templates()})
}
