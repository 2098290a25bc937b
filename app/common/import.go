// Author: SGS Locations (2026). Apache 2.0 License

package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"photosync/app/config"
	"photosync/app/destination"
	"photosync/app/importer"
	"photosync/app/logging"
	"photosync/app/smugmug"
	"photosync/app/tokens"
)

type importRequest struct {
	AlbumKey   string `json:"albumKey"`
	PropertyID string `json:"propertyId"`
}

type importResponse struct {
	Success      bool     `json:"success"`
	UploadedURLs []string `json:"uploadedUrls"`
	URLs         []string `json:"urls"`
	Total        int      `json:"total"`
	Imported     int      `json:"imported"`
	Errors       []string `json:"errors,omitempty"`
	Message      string   `json:"message"`
}

// Import runs the bulk importer for one album. This is a long-running call,
// proportional to the album size; the server's write timeout must stay
// generous (see server.Start).
func Import(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !config.RedisReady(ctx) {
		writeError(w, http.StatusInternalServerError, errorResponse{Error: "token store not ready"})
		return
	}
	req := importRequest{}
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
	if req.AlbumKey == "" {
		writeError(w, http.StatusBadRequest, errorResponse{Error: "albumKey is required"})
		return
	}

	client, err := smugmug.NewClient()
	if err != nil {
		writeError(w, http.StatusInternalServerError, errorResponse{Error: "SmugMug credentials not configured", Details: err.Error()})
		return
	}

	logging.Logger.Printf("starting import of album %s for property %s", req.AlbumKey, req.PropertyID)
	res, err := importer.Run(ctx, client, destination.UploadImage, req.AlbumKey)
	if errors.Is(err, tokens.ErrNotAuthorized) {
		writeError(w, http.StatusUnauthorized, errorResponse{Error: "not authorized with SmugMug", NeedsAuth: true})
		return
	}
	if errors.Is(err, smugmug.ErrAuthorizationExpired) {
		writeError(w, http.StatusUnauthorized, errorResponse{Error: "SmugMug authorization expired", NeedsReauth: true})
		return
	}
	if errors.Is(err, importer.ErrNoImagesFound) {
		writeError(w, http.StatusBadRequest, errorResponse{Error: "no images found in album", Details: req.AlbumKey})
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, errorResponse{Error: "import failed", Details: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, importResponse{
		Success:      true,
		UploadedURLs: res.UploadedURLs,
		URLs:         res.UploadedURLs,
		Total:        res.Total,
		Imported:     res.Imported,
		Errors:       res.Errors,
		Message:      fmt.Sprintf("imported %d of %d images", res.Imported, res.Total),
	})
}
