// Author: SGS Locations (2026). Apache 2.0 License

// Package tokens persists the OAuth credential pairs of the SmugMug
// authorization flow. The site imports from exactly one SmugMug account, so
// both records live under fixed redis keys: holding the permanent pair under
// a single key is what enforces the at-most-one-active-authorization
// invariant.
package tokens

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"photosync/app/config"

	"github.com/redis/go-redis/v9"
)

const (
	requestTokenKey = "smugmug: request token"
	accessTokenKey  = "smugmug: access token"
)

// RequestTokenTTL bounds how long a pending authorization may sit between
// opening the popup and the provider calling back.
var RequestTokenTTL = 15 * time.Minute

var (
	ErrTokenNotFound = errors.New("request token not found")
	ErrNotAuthorized = errors.New("no SmugMug authorization stored")
)

// Record is one credential pair at one stage of its lifecycle. A temporary
// record carries only the request-token fields, a permanent one only the
// access-token fields. Records are never mutated, always deleted and
// re-inserted.
type Record struct {
	RequestToken       string    `json:"requestToken,omitempty"`
	RequestTokenSecret string    `json:"requestTokenSecret,omitempty"`
	AccessToken        string    `json:"accessToken,omitempty"`
	AccessTokenSecret  string    `json:"accessTokenSecret,omitempty"`
	IsTemporary        bool      `json:"isTemporary"`
	Created            time.Time `json:"created"`
}

// SaveTemporaryToken replaces any pending request-token pair with the given
// one.
func SaveTemporaryToken(ctx context.Context, requestToken, requestTokenSecret string) error {
	err := config.GetRedis().Del(ctx, requestTokenKey).Err()
	if err != nil {
		return fmt.Errorf("token store: %v", err)
	}
	return set(ctx, requestTokenKey, Record{
		RequestToken:       requestToken,
		RequestTokenSecret: requestTokenSecret,
		IsTemporary:        true,
		Created:            time.Now(),
	}, RequestTokenTTL)
}

// FindTemporaryTokenByRequestToken returns the secret stored for the given
// request token. ErrTokenNotFound covers expired, already consumed and
// forged tokens alike.
func FindTemporaryTokenByRequestToken(ctx context.Context, requestToken string) (string, error) {
	rec, err := get(ctx, requestTokenKey)
	if err != nil {
		return "", err
	}
	if rec == nil || !rec.IsTemporary || rec.RequestToken != requestToken {
		return "", ErrTokenNotFound
	}
	return rec.RequestTokenSecret, nil
}

// SavePermanentToken clears all prior state and stores the given access-token
// pair as the sole active authorization.
func SavePermanentToken(ctx context.Context, accessToken, accessTokenSecret string) error {
	err := config.GetRedis().Del(ctx, accessTokenKey, requestTokenKey).Err()
	if err != nil {
		return fmt.Errorf("token store: %v", err)
	}
	return set(ctx, accessTokenKey, Record{
		AccessToken:       accessToken,
		AccessTokenSecret: accessTokenSecret,
		IsTemporary:       false,
		Created:           time.Now(),
	}, 0)
}

// GetCurrentAccessToken returns the active access-token pair, or
// ErrNotAuthorized when the admin has never completed the flow (or has
// revoked it).
func GetCurrentAccessToken(ctx context.Context) (accessToken, accessTokenSecret string, err error) {
	rec, err := get(ctx, accessTokenKey)
	if err != nil {
		return "", "", err
	}
	if rec == nil || rec.AccessToken == "" {
		return "", "", ErrNotAuthorized
	}
	return rec.AccessToken, rec.AccessTokenSecret, nil
}

// DeletePermanentToken drops the stored authorization so the admin can start
// over with a clean handshake.
func DeletePermanentToken(ctx context.Context) error {
	err := config.GetRedis().Del(ctx, accessTokenKey).Err()
	if err != nil {
		return fmt.Errorf("token store: %v", err)
	}
	return nil
}

func set(ctx context.Context, key string, rec Record, expiration time.Duration) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("token store: %v", err)
	}
	err = config.GetRedis().Set(ctx, key, string(b), expiration).Err()
	if err != nil {
		return fmt.Errorf("token store: %v", err)
	}
	return nil
}

func get(ctx context.Context, key string) (*Record, error) {
	v, err := config.GetRedis().Get(ctx, key).Result()
	if err == redis.Nil || (err == nil && v == "") {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("token store: %v", err)
	}
	rec := Record{}
	err = json.Unmarshal([]byte(v), &rec)
	if err != nil {
		return nil, fmt.Errorf("token store: failed to unmarshall a record: %v", err)
	}
	return &rec, nil
}
