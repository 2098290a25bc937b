// Author: SGS Locations (2026). Apache 2.0 License

package common

import (
	"net/http"

	"photosync/app/logging"
	"photosync/app/tokens"
)

type revokeResponse struct {
	Success bool `json:"success"`
}

// Revoke drops the stored authorization so the admin can start a clean
// handshake, e.g. to switch to a different SmugMug account.
func Revoke(w http.ResponseWriter, r *http.Request) {
	err := tokens.DeletePermanentToken(r.Context())
	if err != nil {
		logging.Logger.Printf("revoking authorization failed: %v", err)
		writeError(w, http.StatusInternalServerError, errorResponse{Error: "failed to revoke authorization", Details: err.Error()})
		return
	}
	logging.Logger.Println("stored SmugMug authorization revoked")
	writeJSON(w, http.StatusOK, revokeResponse{Success: true})
}
