// Author: SGS Locations (2026). Apache 2.0 License

package common

import (
	"errors"
	"net/http"

	"photosync/app/config"
	"photosync/app/logging"
	"photosync/app/smugmug"
	"photosync/app/tokens"
)

// Callback runs step two of the handshake. SmugMug redirects the admin's
// browser here with oauth_token and oauth_verifier; the handler exchanges
// them for the permanent access pair and sends the browser back to the
// property-creation page. Every failure turns into a redirect with an error
// code the UI can act on, never a raw error page.
func Callback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestToken := r.URL.Query().Get("oauth_token")
	verifier := r.URL.Query().Get("oauth_verifier")
	if requestToken == "" || verifier == "" {
		redirectWithError(w, r, "missing_params")
		return
	}

	client, err := smugmug.NewClient()
	if err != nil {
		redirectWithError(w, r, "config_missing")
		return
	}

	requestTokenSecret, err := tokens.FindTemporaryTokenByRequestToken(ctx, requestToken)
	if errors.Is(err, tokens.ErrTokenNotFound) {
		logging.Logger.Printf("callback for unknown request token %s", logging.Redacted(requestToken))
		redirectWithError(w, r, "token_not_found")
		return
	}
	if err != nil {
		logging.Logger.Printf("request token lookup failed: %v", err)
		redirectWithError(w, r, "storage_failed")
		return
	}

	accessToken, accessTokenSecret, err := client.GetAccessToken(ctx, requestToken, requestTokenSecret, verifier)
	if errors.Is(err, smugmug.ErrTokenExchange) {
		logging.Logger.Printf("access token exchange failed: %v", err)
		redirectWithError(w, r, "token_exchange_failed")
		return
	}
	if err != nil {
		logging.Logger.Printf("access token call failed: %v", err)
		redirectWithError(w, r, "callback_failed")
		return
	}

	err = tokens.SavePermanentToken(ctx, accessToken, accessTokenSecret)
	if err != nil {
		logging.Logger.Printf("storing access token failed: %v", err)
		redirectWithError(w, r, "storage_failed")
		return
	}

	logging.Logger.Printf("authorization complete, access token %s", logging.Redacted(accessToken))
	http.Redirect(w, r, config.GetConfig().AdminRedirectURL+"?smugmug_auth=success", http.StatusFound)
}

func redirectWithError(w http.ResponseWriter, r *http.Request, code string) {
	http.Redirect(w, r, config.GetConfig().AdminRedirectURL+"?error="+code, http.StatusFound)
}
