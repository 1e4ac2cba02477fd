package handler

import (
	"encoding/json"
	"net/http"
)

// All responses share the {success: bool, ...} envelope. Errors carry a
// client-safe message and, for validation failures, the full violation list.

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"success": false, "error": msg})
}

func writeErrorDetails(w http.ResponseWriter, status int, msg string, details []string) {
	writeJSON(w, status, map[string]any{"success": false, "error": msg, "details": details})
}
