// Author: SGS Locations (2026). Apache 2.0 License

package common

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"photosync/app/logging"
	"photosync/app/smugmug"
	"photosync/app/tokens"
)

type resolveAlbumRequest struct {
	URL string `json:"url"`
}

type resolveAlbumResponse struct {
	AlbumKey string `json:"albumKey"`
}

// ResolveAlbum turns a pasted album url into the album key the import
// endpoint needs. Non-url input passes through unchanged.
func ResolveAlbum(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req := resolveAlbumRequest{}
	b, err := io.ReadAll(r.Body)
	r.Body.Close()
	if err != nil {
		writeError(w, http.StatusInternalServerError, errorResponse{Error: "failed to read request", Details: err.Error()})
		return
	}
	err = json.Unmarshal(b, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, errorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}
	if req.URL == "" {
		writeError(w, http.StatusBadRequest, errorResponse{Error: "url is required"})
		return
	}

	client, err := smugmug.NewClient()
	if err != nil {
		writeError(w, http.StatusInternalServerError, errorResponse{Error: "SmugMug credentials not configured", Details: err.Error()})
		return
	}

	// the api fallback needs the stored authorization; scraping alone works
	// without it, so a missing token is not an error yet
	accessToken, accessTokenSecret, err := tokens.GetCurrentAccessToken(ctx)
	if err != nil && !errors.Is(err, tokens.ErrNotAuthorized) {
		writeError(w, http.StatusInternalServerError, errorResponse{Error: "token store failure", Details: err.Error()})
		return
	}

	albumKey, err := client.ResolveAlbumKey(ctx, accessToken, accessTokenSecret, req.URL)
	if err != nil {
		logging.Logger.Printf("album key resolution failed for %q: %v", req.URL, err)
		writeError(w, http.StatusInternalServerError, errorResponse{Error: "failed to resolve album key", Details: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, resolveAlbumResponse{AlbumKey: albumKey})
}
