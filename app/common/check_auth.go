// Author: SGS Locations (2026). Apache 2.0 License

package common

import (
	"errors"
	"net/http"

	"photosync/app/logging"
	"photosync/app/tokens"
)

type checkAuthResponse struct {
	Authorized bool `json:"authorized"`
}

// CheckAuth reports whether a permanent access token is stored. The admin UI
// polls this while the authorize popup is open and uses it to pick between
// the authorize and import buttons.
func CheckAuth(w http.ResponseWriter, r *http.Request) {
	_, _, err := tokens.GetCurrentAccessToken(r.Context())
	if err != nil && !errors.Is(err, tokens.ErrNotAuthorized) {
		logging.Logger.Printf("check-auth lookup failed: %v", err)
	}
	writeJSON(w, http.StatusOK, checkAuthResponse{Authorized: err == nil})
}
