// Author: SGS Locations (2026). Apache 2.0 License

package tokens

import (
	"context"
	"errors"
	"testing"

	"photosync/app/config"
	"photosync/app/testutil"
)

func setup() {
	config.SetRedis(testutil.NewFakeRedis())
}

func TestTokenLifecycle(t *testing.T) {
	setup()
	ctx := context.Background()

	if err := SaveTemporaryToken(ctx, "abc", "xyz"); err != nil {
		t.Fatalf("SaveTemporaryToken: %v", err)
	}
	secret, err := FindTemporaryTokenByRequestToken(ctx, "abc")
	if err != nil {
		t.Fatalf("FindTemporaryTokenByRequestToken: %v", err)
	}
	if secret != "xyz" {
		t.Fatalf("secret = %q, want %q", secret, "xyz")
	}

	if err := SavePermanentToken(ctx, "AT1", "AS1"); err != nil {
		t.Fatalf("SavePermanentToken: %v", err)
	}
	at, as, err := GetCurrentAccessToken(ctx)
	if err != nil {
		t.Fatalf("GetCurrentAccessToken: %v", err)
	}
	if at != "AT1" || as != "AS1" {
		t.Fatalf("access pair = %q/%q, want AT1/AS1", at, as)
	}

	// temporary state is superseded, not appended
	_, err = FindTemporaryTokenByRequestToken(ctx, "abc")
	if !errors.Is(err, ErrTokenNotFound) {
		t.Fatalf("expected ErrTokenNotFound after permanent save, got %v", err)
	}
}

func TestSinglePermanentRecord(t *testing.T) {
	setup()
	ctx := context.Background()

	if err := SavePermanentToken(ctx, "AT1", "AS1"); err != nil {
		t.Fatalf("SavePermanentToken: %v", err)
	}
	if err := SavePermanentToken(ctx, "AT2", "AS2"); err != nil {
		t.Fatalf("SavePermanentToken: %v", err)
	}
	at, as, err := GetCurrentAccessToken(ctx)
	if err != nil {
		t.Fatalf("GetCurrentAccessToken: %v", err)
	}
	if at != "AT2" || as != "AS2" {
		t.Fatalf("access pair = %q/%q, want the second pair", at, as)
	}
}

func TestTemporaryTokenReplaced(t *testing.T) {
	setup()
	ctx := context.Background()

	if err := SaveTemporaryToken(ctx, "first", "s1"); err != nil {
		t.Fatalf("SaveTemporaryToken: %v", err)
	}
	if err := SaveTemporaryToken(ctx, "second", "s2"); err != nil {
		t.Fatalf("SaveTemporaryToken: %v", err)
	}
	if _, err := FindTemporaryTokenByRequestToken(ctx, "first"); !errors.Is(err, ErrTokenNotFound) {
		t.Fatalf("expected the first token to be purged, got %v", err)
	}
	secret, err := FindTemporaryTokenByRequestToken(ctx, "second")
	if err != nil || secret != "s2" {
		t.Fatalf("second token lookup = %q, %v", secret, err)
	}
}

func TestForgedRequestToken(t *testing.T) {
	setup()
	ctx := context.Background()

	if err := SaveTemporaryToken(ctx, "abc", "xyz"); err != nil {
		t.Fatalf("SaveTemporaryToken: %v", err)
	}
	if _, err := FindTemporaryTokenByRequestToken(ctx, "forged"); !errors.Is(err, ErrTokenNotFound) {
		t.Fatalf("expected ErrTokenNotFound for a forged token, got %v", err)
	}
}

func TestNotAuthorized(t *testing.T) {
	setup()
	ctx := context.Background()

	if _, _, err := GetCurrentAccessToken(ctx); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized on an empty store, got %v", err)
	}

	if err := SavePermanentToken(ctx, "AT1", "AS1"); err != nil {
		t.Fatalf("SavePermanentToken: %v", err)
	}
	if err := DeletePermanentToken(ctx); err != nil {
		t.Fatalf("DeletePermanentToken: %v", err)
	}
	if _, _, err := GetCurrentAccessToken(ctx); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized after revoke, got %v", err)
	}
}

func TestExpiredRequestToken(t *testing.T) {
	fake := testutil.NewFakeRedis()
	config.SetRedis(fake)
	ctx := context.Background()

	if err := SaveTemporaryToken(ctx, "abc", "xyz"); err != nil {
		t.Fatalf("SaveTemporaryToken: %v", err)
	}
	fake.Expire("smugmug: request token")
	if _, err := FindTemporaryTokenByRequestToken(ctx, "abc"); !errors.Is(err, ErrTokenNotFound) {
		t.Fatalf("expected ErrTokenNotFound for an expired token, got %v", err)
	}
}
