// Author: SGS Locations (2026). Apache 2.0 License

// Package smugmug is the client for the SmugMug OAuth 1.0a endpoints and the
// v2 REST API, covering the three-legged handshake, album traversal and
// album-key resolution.
package smugmug

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"photosync/app/config"
	"photosync/app/oauth1"
)

const (
	requestTokenPath = "/services/oauth/1.0a/getRequestToken"
	authorizePath    = "/services/oauth/1.0a/authorize"
	accessTokenPath  = "/services/oauth/1.0a/getAccessToken"
)

var (
	ErrTokenExchange        = errors.New("token exchange failed")
	ErrAuthorizationExpired = errors.New("SmugMug authorization expired")
)

type Client struct {
	APIURL         string
	ConsumerKey    string
	ConsumerSecret string
	CallbackURL    string
	HTTPClient     *http.Client
}

// NewClient builds a client from the loaded configuration. It fails when the
// SmugMug application key pair is not configured.
func NewClient() (*Client, error) {
	key, secret, err := config.ConsumerCredentials()
	if err != nil {
		return nil, err
	}
	cfg := config.GetConfig()
	return &Client{
		APIURL:         strings.TrimSuffix(cfg.SmugmugAPIURL, "/"),
		ConsumerKey:    key,
		ConsumerSecret: secret,
		CallbackURL:    cfg.CallbackURL,
		HTTPClient:     &http.Client{Timeout: 20 * time.Second},
	}, nil
}

// GetRequestToken performs step one of the handshake and returns the
// temporary credential pair.
func (c *Client) GetRequestToken(ctx context.Context) (token, secret string, err error) {
	vals, err := c.tokenCall(ctx, c.APIURL+requestTokenPath, oauth1.ParamOpts{Callback: c.CallbackURL}, "")
	if err != nil {
		return "", "", err
	}
	if confirmed := vals.Get("oauth_callback_confirmed"); confirmed != "" && confirmed != "true" {
		return "", "", fmt.Errorf("%w: oauth_callback_confirmed was %q", ErrTokenExchange, confirmed)
	}
	return vals.Get("oauth_token"), vals.Get("oauth_token_secret"), nil
}

// AuthorizeURL is where the admin's browser is sent to grant read access.
func (c *Client) AuthorizeURL(requestToken string) string {
	return c.APIURL + authorizePath + "?oauth_token=" + url.QueryEscape(requestToken) + "&Access=Full&Permissions=Read"
}

// GetAccessToken exchanges an authorized request token plus verifier for the
// permanent credential pair. The request is signed with the request-token
// secret, the only step where that secret enters the signing key.
func (c *Client) GetAccessToken(ctx context.Context, requestToken, requestTokenSecret, verifier string) (token, secret string, err error) {
	vals, err := c.tokenCall(ctx, c.APIURL+accessTokenPath, oauth1.ParamOpts{Token: requestToken, Verifier: verifier}, requestTokenSecret)
	if err != nil {
		return "", "", err
	}
	return vals.Get("oauth_token"), vals.Get("oauth_token_secret"), nil
}

// tokenCall issues one signed GET against a token endpoint and parses the
// form-encoded body, falling back to a JSON-shaped body some deployments
// return. Both handshake steps fail with ErrTokenExchange when the response
// carries no token pair.
func (c *Client) tokenCall(ctx context.Context, endpoint string, opts oauth1.ParamOpts, tokenSecret string) (url.Values, error) {
	params := oauth1.BuildParams(c.ConsumerKey, opts)
	params["oauth_signature"] = oauth1.Sign("GET", endpoint, params, c.ConsumerSecret, tokenSecret)

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint+"?"+encodeQuery(params), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/plain")
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token endpoint call failed: %v", err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d - %s", ErrTokenExchange, resp.StatusCode, string(b))
	}

	vals, err := url.ParseQuery(string(b))
	if err != nil || vals.Get("oauth_token") == "" || vals.Get("oauth_token_secret") == "" {
		jsonShaped := struct {
			Token  string `json:"oauth_token"`
			Secret string `json:"oauth_token_secret"`
		}{}
		if jsonErr := json.Unmarshal(b, &jsonShaped); jsonErr == nil && jsonShaped.Token != "" && jsonShaped.Secret != "" {
			vals = url.Values{}
			vals.Set("oauth_token", jsonShaped.Token)
			vals.Set("oauth_token_secret", jsonShaped.Secret)
			return vals, nil
		}
		return nil, fmt.Errorf("%w: response carries no oauth_token/oauth_token_secret: %s", ErrTokenExchange, string(b))
	}
	return vals, nil
}

// apiGet issues one signed GET against the REST API and decodes the JSON
// response into out. Every call computes a fresh parameter set and
// signature. A 401 maps to ErrAuthorizationExpired so callers can prompt
// re-authorization.
func (c *Client) apiGet(ctx context.Context, rawurl, accessToken, accessTokenSecret string, out interface{}) error {
	parsed, err := url.Parse(rawurl)
	if err != nil {
		return err
	}
	params := oauth1.BuildParams(c.ConsumerKey, oauth1.ParamOpts{Token: accessToken})
	for k, vs := range parsed.Query() {
		if len(vs) > 0 {
			params[k] = vs[0]
		}
	}
	baseURL := parsed.Scheme + "://" + parsed.Host + parsed.Path
	params["oauth_signature"] = oauth1.Sign("GET", baseURL, params, c.ConsumerSecret, accessTokenSecret)

	req, err := http.NewRequestWithContext(ctx, "GET", baseURL+"?"+encodeQuery(params), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("API call failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusUnauthorized {
		return ErrAuthorizationExpired
	}
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(b))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func encodeQuery(params map[string]string) string {
	q := url.Values{}
	for k, v := range params {
		q.Set(k, v)
	}
	return q.Encode()
}
