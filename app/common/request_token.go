// Author: SGS Locations (2026). Apache 2.0 License

package common

import (
	"net/http"

	"photosync/app/config"
	"photosync/app/logging"
	"photosync/app/smugmug"
	"photosync/app/tokens"
)

type requestTokenResponse struct {
	Success      bool   `json:"success"`
	AuthURL      string `json:"authUrl"`
	RequestToken string `json:"requestToken"`
}

// RequestToken runs step one of the handshake: obtain a request token from
// SmugMug, persist it, and hand the browser the authorize url to open in a
// popup. The admin UI polls CheckAuth until the callback lands.
func RequestToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !config.RedisReady(ctx) {
		writeError(w, http.StatusInternalServerError, errorResponse{Error: "token store not ready"})
		return
	}
	client, err := smugmug.NewClient()
	if err != nil {
		writeError(w, http.StatusInternalServerError, errorResponse{Error: "SmugMug credentials not configured", Details: err.Error()})
		return
	}

	token, secret, err := client.GetRequestToken(ctx)
	if err != nil {
		logging.Logger.Printf("request token call failed: %v", err)
		writeError(w, http.StatusInternalServerError, errorResponse{Error: "failed to get request token", Details: err.Error()})
		return
	}
	logging.Logger.Printf("obtained request token %s", logging.Redacted(token))

	err = tokens.SaveTemporaryToken(ctx, token, secret)
	if err != nil {
		logging.Logger.Printf("storing request token failed: %v", err)
		writeError(w, http.StatusInternalServerError, errorResponse{Error: "failed to store request token", Details: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, requestTokenResponse{
		Success:      true,
		AuthURL:      client.AuthorizeURL(token),
		RequestToken: token,
	})
}
