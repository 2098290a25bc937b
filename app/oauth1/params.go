// Author: SGS Locations (2026). Apache 2.0 License

package oauth1

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// ParamOpts selects the optional oauth_* fields for one request. Callback is
// set only on the request-token step, Token on every call after it, Verifier
// only on the access-token exchange.
type ParamOpts struct {
	Callback string
	Token    string
	Verifier string
}

// BuildParams assembles the oauth_* parameter set for one signed request.
// Every call produces a fresh nonce and timestamp; a parameter set must
// never be reused across requests, the provider rejects replays.
func BuildParams(consumerKey string, opts ParamOpts) map[string]string {
	params := map[string]string{
		"oauth_consumer_key":     consumerKey,
		"oauth_nonce":            nonce(),
		"oauth_signature_method": "HMAC-SHA1",
		"oauth_timestamp":        fmt.Sprintf("%d", time.Now().Unix()),
		"oauth_version":          "1.0",
	}
	if opts.Callback != "" {
		params["oauth_callback"] = opts.Callback
	}
	if opts.Token != "" {
		params["oauth_token"] = opts.Token
	}
	if opts.Verifier != "" {
		params["oauth_verifier"] = opts.Verifier
	}
	return params
}

// nonce returns 128 bits of hex-encoded randomness.
func nonce() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Errorf("nonce: %v", err))
	}
	return hex.EncodeToString(b)
}
