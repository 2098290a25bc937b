// Author: SGS Locations (2026). Apache 2.0 License

// Package common holds the HTTP handlers of the SmugMug authorization and
// import API.
package common

import (
	"encoding/json"
	"net/http"

	"photosync/app/logging"
)

type errorResponse struct {
	Error       string `json:"error"`
	Details     string `json:"details,omitempty"`
	NeedsAuth   bool   `json:"needsAuth,omitempty"`
	NeedsReauth bool   `json:"needsReauth,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		logging.Logger.Printf("marshalling response failed: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(b)
}

func writeError(w http.ResponseWriter, status int, res errorResponse) {
	writeJSON(w, status, res)
}
