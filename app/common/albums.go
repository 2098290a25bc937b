// Author: SGS Locations (2026). Apache 2.0 License

package common

import (
	"errors"
	"net/http"

	"photosync/app/logging"
	"photosync/app/smugmug"
	"photosync/app/tokens"
)

type albumEntry struct {
	AlbumKey   string `json:"albumKey"`
	Name       string `json:"name"`
	ImageCount int    `json:"imageCount"`
	URLPath    string `json:"urlPath"`
	WebURI     string `json:"webUri"`
}

type albumsResponse struct {
	Albums []albumEntry `json:"albums"`
}

// Albums lists the authorized account's galleries so the admin UI can offer
// a picker next to the paste-a-url field.
func Albums(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	accessToken, accessTokenSecret, err := tokens.GetCurrentAccessToken(ctx)
	if errors.Is(err, tokens.ErrNotAuthorized) {
		writeError(w, http.StatusUnauthorized, errorResponse{Error: "not authorized with SmugMug", NeedsAuth: true})
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, errorResponse{Error: "token store failure", Details: err.Error()})
		return
	}

	client, err := smugmug.NewClient()
	if err != nil {
		writeError(w, http.StatusInternalServerError, errorResponse{Error: "SmugMug credentials not configured", Details: err.Error()})
		return
	}

	nickname, err := client.AuthenticatedUserNick(ctx, accessToken, accessTokenSecret)
	if err == nil {
		var albums []smugmug.Album
		albums, err = client.ListUserAlbums(ctx, accessToken, accessTokenSecret, nickname)
		if err == nil {
			res := albumsResponse{Albums: []albumEntry{}}
			for _, a := range albums {
				res.Albums = append(res.Albums, albumEntry{
					AlbumKey:   a.AlbumKey,
					Name:       a.Name,
					ImageCount: a.ImageCount,
					URLPath:    a.URLPath,
					WebURI:     a.WebURI,
				})
			}
			writeJSON(w, http.StatusOK, res)
			return
		}
	}

	if errors.Is(err, smugmug.ErrAuthorizationExpired) {
		writeError(w, http.StatusUnauthorized, errorResponse{Error: "SmugMug authorization expired", NeedsReauth: true})
		return
	}
	logging.Logger.Printf("album listing failed: %v", err)
	writeError(w, http.StatusInternalServerError, errorResponse{Error: "failed to list albums", Details: err.Error()})
}
