// Author: SGS Locations (2026). Apache 2.0 License

// Package oauth1 implements the subset of OAuth 1.0a needed to talk to the
// SmugMug API: HMAC-SHA1 request signing and the oauth_* parameter set for
// the three-legged flow.
package oauth1

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"sort"
	"strings"
)

const upperhex = "0123456789ABCDEF"

// PercentEncode escapes a string per RFC 3986 as required by the OAuth 1.0a
// signature base string. Only alphanumerics and "-", ".", "_" pass through
// unescaped. Note that url.QueryEscape is not a substitute: it encodes
// spaces as "+" and leaves characters unescaped that must be covered here.
func PercentEncode(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c >= '0' && c <= '9' ||
			c == '-' || c == '.' || c == '_' {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0xf])
	}
	return b.String()
}

// Sign computes the oauth_signature for one request. The url must not carry
// a query string and params must contain every parameter that will appear on
// the wire, oauth_* fields included. tokenSecret is empty during the
// request-token step.
func Sign(method, rawurl string, params map[string]string, consumerSecret, tokenSecret string) string {
	type pair struct{ k, v string }
	pairs := make([]pair, 0, len(params))
	for k, v := range params {
		pairs = append(pairs, pair{PercentEncode(k), PercentEncode(v)})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].k != pairs[j].k {
			return pairs[i].k < pairs[j].k
		}
		return pairs[i].v < pairs[j].v
	})

	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = p.k + "=" + p.v
	}

	base := strings.ToUpper(method) + "&" + PercentEncode(rawurl) + "&" + PercentEncode(strings.Join(parts, "&"))
	key := PercentEncode(consumerSecret) + "&" + PercentEncode(tokenSecret)

	mac := hmac.New(sha1.New, []byte(key))
	mac.Write([]byte(base))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
