// Author: SGS Locations (2026). Apache 2.0 License

// Package importer copies every image of a SmugMug album into the site's
// object storage, with per-image failure accounting.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"photosync/app/destination"
	"photosync/app/logging"
	"photosync/app/smugmug"
	"photosync/app/tokens"
)

var ErrNoImagesFound = errors.New("no images found in album")

var downloadTimeout = 30 * time.Second

// Result summarizes one import run. Imported + len(Errors) always equals
// Total; UploadedURLs follows processing order with failed images skipped.
type Result struct {
	Total        int      `json:"total"`
	Imported     int      `json:"imported"`
	UploadedURLs []string `json:"uploadedUrls"`
	Errors       []string `json:"errors"`
}

// UploadFunc stores one image and returns its public url. Production wires
// destination.UploadImage; tests substitute an in-memory sink.
type UploadFunc func(ctx context.Context, key string, body io.Reader) (string, error)

// Run walks the album and re-hosts every image. The per-image loop is
// deliberately sequential: SmugMug rate-limits aggressively and serial
// processing keeps error attribution simple. One image failing never aborts
// the batch; tokens.ErrNotAuthorized, smugmug.ErrAuthorizationExpired and an
// empty album are the only run-level failures.
func Run(ctx context.Context, client *smugmug.Client, upload UploadFunc, albumKey string) (Result, error) {
	accessToken, accessTokenSecret, err := tokens.GetCurrentAccessToken(ctx)
	if err != nil {
		return Result{}, err
	}

	images, err := client.AlbumImages(ctx, accessToken, accessTokenSecret, albumKey)
	if err != nil {
		return Result{}, err
	}
	if len(images) == 0 {
		return Result{}, ErrNoImagesFound
	}

	res := Result{Total: len(images), UploadedURLs: []string{}, Errors: []string{}}
	for i, img := range images {
		publicURL, err := importOne(ctx, client, accessToken, accessTokenSecret, upload, img)
		if err != nil {
			name := img.FileName
			if name == "" {
				name = fmt.Sprintf("image %d", i+1)
			}
			logging.Logger.Printf("import of %s failed: %v", name, err)
			res.Errors = append(res.Errors, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		res.UploadedURLs = append(res.UploadedURLs, publicURL)
	}
	res.Imported = len(res.UploadedURLs)
	logging.Logger.Printf("album %s: imported %d of %d images", albumKey, res.Imported, res.Total)
	return res, nil
}

func importOne(ctx context.Context, client *smugmug.Client, accessToken, accessTokenSecret string, upload UploadFunc, img smugmug.AlbumImage) (string, error) {
	downloadURL, err := client.LargestImageDownloadURL(ctx, accessToken, accessTokenSecret, img)
	if err != nil {
		return "", err
	}
	body, err := download(ctx, downloadURL)
	if err != nil {
		return "", err
	}
	defer body.Close()
	return upload(ctx, destination.GenerateKey(), body)
}

// download fetches the image bytes. The url is a pre-authorized direct link,
// no signing needed.
func download(ctx context.Context, rawurl string) (io.ReadCloser, error) {
	client := &http.Client{Timeout: downloadTimeout}
	req, err := http.NewRequestWithContext(ctx, "GET", rawurl, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("download returned status %d", resp.StatusCode)
	}
	return resp.Body, nil
}
