// Author: SGS Locations (2026). Apache 2.0 License

package smugmug

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"photosync/app/logging"
)

var (
	ErrAlbumNotFound    = errors.New("album not found")
	ErrExtractionFailed = errors.New("could not extract the album key")
)

// SmugMug serves different markup to clients it takes for bots.
const browserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

var scrapeTimeout = 10 * time.Second

// fetchAlbumPage downloads the shared album page. Package variable so tests
// can stub the network.
var fetchAlbumPage = func(ctx context.Context, rawurl string) (string, error) {
	client := &http.Client{Timeout: scrapeTimeout}
	req, err := http.NewRequestWithContext(ctx, "GET", rawurl, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", browserUserAgent)
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("album page returned status %d", resp.StatusCode)
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// The extraction heuristics, tried in order. Each is a self-contained
// function over the fetched markup so heuristics can be added, removed and
// tested in isolation.
type scrapePattern struct {
	name string
	find func(page string) string
}

var scrapePatterns = []scrapePattern{
	{"album key fragment", findAlbumKeyFragment},
	{"data-config attribute", findDataConfigKey},
	{"embedded api url", findAPIAlbumURL},
	{"script album key", findScriptAlbumKey},
}

var (
	albumKeyFragmentRe = regexp.MustCompile(`"AlbumKey"\s*:\s*"([A-Za-z0-9_-]+)"`)
	dataConfigRe       = regexp.MustCompile(`data-config='([^']+)'`)
	apiAlbumURLRe      = regexp.MustCompile(`/api/v2/album/([^"'!/\s]+)`)
	scriptBlockRe      = regexp.MustCompile(`(?s)<script[^>]*>(.*?)</script>`)
	scriptAlbumKeyRe   = regexp.MustCompile(`"albumKey"\s*:\s*"([A-Za-z0-9_-]+)"`)
)

func findAlbumKeyFragment(page string) string {
	if m := albumKeyFragmentRe.FindStringSubmatch(page); m != nil {
		return m[1]
	}
	return ""
}

func findDataConfigKey(page string) string {
	m := dataConfigRe.FindStringSubmatch(page)
	if m == nil {
		return ""
	}
	cfg := map[string]interface{}{}
	if err := json.Unmarshal([]byte(html.UnescapeString(m[1])), &cfg); err != nil {
		return ""
	}
	if key, ok := cfg["albumKey"].(string); ok {
		return key
	}
	return ""
}

func findAPIAlbumURL(page string) string {
	if m := apiAlbumURLRe.FindStringSubmatch(page); m != nil {
		return m[1]
	}
	return ""
}

func findScriptAlbumKey(page string) string {
	for _, block := range scriptBlockRe.FindAllStringSubmatch(page, -1) {
		if m := scriptAlbumKeyRe.FindStringSubmatch(block[1]); m != nil {
			return m[1]
		}
	}
	return ""
}

// ResolveAlbumKey turns a shared album url into the opaque album key. Input
// that does not look like a SmugMug url is taken to be the key itself and
// returned unchanged, without any network call. Otherwise the page markup is
// scraped first; when the fetch or every pattern fails, the authenticated
// albums listing of the account named in the hostname is searched by web
// path.
func (c *Client) ResolveAlbumKey(ctx context.Context, accessToken, accessTokenSecret, urlOrKey string) (string, error) {
	input := strings.TrimSpace(urlOrKey)
	if !strings.Contains(strings.ToLower(input), "smugmug.com") {
		return input, nil
	}

	page, fetchErr := fetchAlbumPage(ctx, input)
	if fetchErr != nil {
		logging.Logger.Printf("album page fetch failed, falling back to the albums api: %v", fetchErr)
	} else {
		for _, p := range scrapePatterns {
			if key := p.find(page); key != "" {
				logging.Logger.Printf("album key found via %s", p.name)
				return key, nil
			}
		}
		logging.Logger.Println("no scrape pattern matched, falling back to the albums api")
	}

	key, err := c.findAlbumByWebPath(ctx, accessToken, accessTokenSecret, input)
	if err != nil {
		if errors.Is(err, ErrAlbumNotFound) || errors.Is(err, ErrAuthorizationExpired) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v - paste the album key directly if the album url cannot be read", ErrExtractionFailed, err)
	}
	return key, nil
}

func (c *Client) findAlbumByWebPath(ctx context.Context, accessToken, accessTokenSecret, rawurl string) (string, error) {
	parsed, err := url.Parse(rawurl)
	if err != nil {
		return "", err
	}
	nickname := strings.Split(parsed.Hostname(), ".")[0]
	if nickname == "" {
		return "", fmt.Errorf("no account name in hostname %q", parsed.Hostname())
	}

	albums, err := c.ListUserAlbums(ctx, accessToken, accessTokenSecret, nickname)
	if err != nil {
		return "", err
	}

	want := strings.Trim(strings.ToLower(parsed.Path), "/")
	for _, a := range albums {
		got := strings.Trim(strings.ToLower(a.URLPath), "/")
		if got == "" {
			continue
		}
		if got == want || strings.HasSuffix(want, got) || strings.HasSuffix(got, want) {
			return a.AlbumKey, nil
		}
	}
	return "", fmt.Errorf("%w: searched %d albums, none matching path %q", ErrAlbumNotFound, len(albums), want)
}
