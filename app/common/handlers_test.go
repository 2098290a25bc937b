// Author: SGS Locations (2026). Apache 2.0 License

package common

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"photosync/app/config"
	"photosync/app/testutil"
	"photosync/app/tokens"
)

const adminURL = "https://sgslocations.example/admin/properties/new"

func setup(t *testing.T, smugmugURL string) {
	t.Helper()
	config.SetRedis(testutil.NewFakeRedis())
	config.SetConsumerCredentials("ck", "cs")
	config.SetConfig(config.Config{
		SmugmugAPIURL:    smugmugURL,
		CallbackURL:      "https://sgslocations.example/api/smugmug/callback",
		AdminRedirectURL: adminURL,
	})
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("response is not valid json: %v - %s", err, w.Body.String())
	}
}

func TestRequestToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("oauth_token=abc&oauth_token_secret=xyz&oauth_callback_confirmed=true"))
	}))
	defer srv.Close()
	setup(t, srv.URL)

	w := httptest.NewRecorder()
	RequestToken(w, httptest.NewRequest("GET", "/api/smugmug/request-token", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d - %s", w.Code, w.Body.String())
	}
	res := struct {
		Success      bool   `json:"success"`
		AuthURL      string `json:"authUrl"`
		RequestToken string `json:"requestToken"`
	}{}
	decodeBody(t, w, &res)
	if !res.Success || res.RequestToken != "abc" {
		t.Fatalf("response = %+v", res)
	}
	if !strings.Contains(res.AuthURL, "oauth_token=abc") || !strings.Contains(res.AuthURL, "Access=Full&Permissions=Read") {
		t.Fatalf("authUrl = %q", res.AuthURL)
	}

	secret, err := tokens.FindTemporaryTokenByRequestToken(context.Background(), "abc")
	if err != nil || secret != "xyz" {
		t.Fatalf("temporary token not stored: %q, %v", secret, err)
	}
}

func TestRequestTokenConfigMissing(t *testing.T) {
	setup(t, "https://api.smugmug.com")
	config.SetConsumerCredentials("", "")

	w := httptest.NewRecorder()
	RequestToken(w, httptest.NewRequest("GET", "/api/smugmug/request-token", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	res := struct {
		Error string `json:"error"`
	}{}
	decodeBody(t, w, &res)
	if res.Error == "" {
		t.Fatalf("expected an error body, got %s", w.Body.String())
	}
}

func TestCallbackMissingParams(t *testing.T) {
	setup(t, "https://api.smugmug.com")

	w := httptest.NewRecorder()
	Callback(w, httptest.NewRequest("GET", "/api/smugmug/callback?oauth_token=abc", nil))

	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want a redirect", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != adminURL+"?error=missing_params" {
		t.Fatalf("location = %q", loc)
	}
	// no store writes happened
	if _, _, err := tokens.GetCurrentAccessToken(context.Background()); !errors.Is(err, tokens.ErrNotAuthorized) {
		t.Fatalf("unexpected access token after failed callback: %v", err)
	}
}

func TestCallbackTokenNotFound(t *testing.T) {
	setup(t, "https://api.smugmug.com")

	w := httptest.NewRecorder()
	Callback(w, httptest.NewRequest("GET", "/api/smugmug/callback?oauth_token=stale&oauth_verifier=999", nil))

	if loc := w.Header().Get("Location"); loc != adminURL+"?error=token_not_found" {
		t.Fatalf("location = %q", loc)
	}
}

func TestCallbackEndToEnd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("oauth_token") != "abc" || r.URL.Query().Get("oauth_verifier") != "999" {
			t.Fatalf("exchange query = %v", r.URL.Query())
		}
		w.Write([]byte("oauth_token=AT1&oauth_token_secret=AS1"))
	}))
	defer srv.Close()
	setup(t, srv.URL)

	if err := tokens.SaveTemporaryToken(context.Background(), "abc", "xyz"); err != nil {
		t.Fatalf("SaveTemporaryToken: %v", err)
	}

	w := httptest.NewRecorder()
	Callback(w, httptest.NewRequest("GET", "/api/smugmug/callback?oauth_token=abc&oauth_verifier=999", nil))

	if loc := w.Header().Get("Location"); loc != adminURL+"?smugmug_auth=success" {
		t.Fatalf("location = %q - %s", loc, w.Body.String())
	}
	at, as, err := tokens.GetCurrentAccessToken(context.Background())
	if err != nil || at != "AT1" || as != "AS1" {
		t.Fatalf("access pair = %q/%q, %v", at, as, err)
	}
	// the request token was consumed
	if _, err := tokens.FindTemporaryTokenByRequestToken(context.Background(), "abc"); !errors.Is(err, tokens.ErrTokenNotFound) {
		t.Fatalf("request token survived the exchange: %v", err)
	}
}

func TestCallbackExchangeFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("everything is broken"))
	}))
	defer srv.Close()
	setup(t, srv.URL)

	if err := tokens.SaveTemporaryToken(context.Background(), "abc", "xyz"); err != nil {
		t.Fatalf("SaveTemporaryToken: %v", err)
	}

	w := httptest.NewRecorder()
	Callback(w, httptest.NewRequest("GET", "/api/smugmug/callback?oauth_token=abc&oauth_verifier=999", nil))

	if loc := w.Header().Get("Location"); loc != adminURL+"?error=token_exchange_failed" {
		t.Fatalf("location = %q", loc)
	}
}

func TestCheckAuth(t *testing.T) {
	setup(t, "https://api.smugmug.com")

	w := httptest.NewRecorder()
	CheckAuth(w, httptest.NewRequest("GET", "/api/smugmug/check-auth", nil))
	res := struct {
		Authorized bool `json:"authorized"`
	}{}
	decodeBody(t, w, &res)
	if res.Authorized {
		t.Fatal("authorized must be false on an empty store")
	}

	if err := tokens.SavePermanentToken(context.Background(), "AT1", "AS1"); err != nil {
		t.Fatalf("SavePermanentToken: %v", err)
	}
	w = httptest.NewRecorder()
	CheckAuth(w, httptest.NewRequest("GET", "/api/smugmug/check-auth", nil))
	decodeBody(t, w, &res)
	if !res.Authorized {
		t.Fatal("authorized must be true after the handshake")
	}
}

func TestRevoke(t *testing.T) {
	setup(t, "https://api.smugmug.com")
	if err := tokens.SavePermanentToken(context.Background(), "AT1", "AS1"); err != nil {
		t.Fatalf("SavePermanentToken: %v", err)
	}

	w := httptest.NewRecorder()
	Revoke(w, httptest.NewRequest("POST", "/api/smugmug/revoke", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if _, _, err := tokens.GetCurrentAccessToken(context.Background()); !errors.Is(err, tokens.ErrNotAuthorized) {
		t.Fatalf("authorization survived revoke: %v", err)
	}
}

func TestResolveAlbumPassthrough(t *testing.T) {
	setup(t, "https://api.smugmug.com")

	w := httptest.NewRecorder()
	ResolveAlbum(w, httptest.NewRequest("POST", "/api/smugmug/resolve-album", strings.NewReader(`{"url":"AbCd123"}`)))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d - %s", w.Code, w.Body.String())
	}
	res := struct {
		AlbumKey string `json:"albumKey"`
	}{}
	decodeBody(t, w, &res)
	if res.AlbumKey != "AbCd123" {
		t.Fatalf("albumKey = %q", res.AlbumKey)
	}
}

func TestResolveAlbumMissingURL(t *testing.T) {
	setup(t, "https://api.smugmug.com")

	w := httptest.NewRecorder()
	ResolveAlbum(w, httptest.NewRequest("POST", "/api/smugmug/resolve-album", strings.NewReader(`{}`)))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestImportValidation(t *testing.T) {
	setup(t, "https://api.smugmug.com")

	w := httptest.NewRecorder()
	Import(w, httptest.NewRequest("POST", "/api/smugmug/import", strings.NewReader(`{"propertyId":"p1"}`)))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for a missing albumKey", w.Code)
	}
}

func TestImportNeedsAuth(t *testing.T) {
	setup(t, "https://api.smugmug.com")

	w := httptest.NewRecorder()
	Import(w, httptest.NewRequest("POST", "/api/smugmug/import", strings.NewReader(`{"albumKey":"KEY","propertyId":"p1"}`)))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	res := struct {
		NeedsAuth bool `json:"needsAuth"`
	}{}
	decodeBody(t, w, &res)
	if !res.NeedsAuth {
		t.Fatalf("needsAuth flag missing: %s", w.Body.String())
	}
}

func TestImportNeedsReauth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()
	setup(t, srv.URL)
	if err := tokens.SavePermanentToken(context.Background(), "AT1", "AS1"); err != nil {
		t.Fatalf("SavePermanentToken: %v", err)
	}

	w := httptest.NewRecorder()
	Import(w, httptest.NewRequest("POST", "/api/smugmug/import", strings.NewReader(`{"albumKey":"KEY","propertyId":"p1"}`)))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	res := struct {
		NeedsReauth bool `json:"needsReauth"`
	}{}
	decodeBody(t, w, &res)
	if !res.NeedsReauth {
		t.Fatalf("needsReauth flag missing: %s", w.Body.String())
	}
}
