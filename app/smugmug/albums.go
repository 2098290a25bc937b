// Author: SGS Locations (2026). Apache 2.0 License

package smugmug

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingImageURI    = errors.New("image metadata carries no largest-image uri")
	ErrMissingDownloadURL = errors.New("largest-image metadata carries no download url")
)

// Album is one gallery of the authenticated user.
type Album struct {
	AlbumKey   string `json:"AlbumKey"`
	Name       string `json:"Name"`
	URLPath    string `json:"UrlPath"`
	WebURI     string `json:"WebUri"`
	URI        string `json:"Uri"`
	ImageCount int    `json:"ImageCount"`
}

// AlbumImage is one image as listed by the album!images endpoint. URI points
// at the image's metadata resource.
type AlbumImage struct {
	FileName string `json:"FileName"`
	Title    string `json:"Title,omitempty"`
	URI      string `json:"Uri"`
}

type pages struct {
	NextPage string `json:"NextPage,omitempty"`
}

// AuthenticatedUserNick returns the nickname of the account the stored
// authorization belongs to.
func (c *Client) AuthenticatedUserNick(ctx context.Context, accessToken, accessTokenSecret string) (string, error) {
	var out struct {
		Response struct {
			User struct {
				NickName string `json:"NickName"`
			} `json:"User"`
		} `json:"Response"`
	}
	err := c.apiGet(ctx, c.APIURL+"/api/v2!authuser", accessToken, accessTokenSecret, &out)
	if err != nil {
		return "", err
	}
	if out.Response.User.NickName == "" {
		return "", fmt.Errorf("authuser response carries no nickname")
	}
	return out.Response.User.NickName, nil
}

// ListUserAlbums walks all album pages of the given user.
func (c *Client) ListUserAlbums(ctx context.Context, accessToken, accessTokenSecret, nickname string) ([]Album, error) {
	all := []Album{}
	next := c.APIURL + "/api/v2/user/" + nickname + "!albums?count=100"
	for next != "" {
		var out struct {
			Response struct {
				Album []Album `json:"Album"`
				Pages pages   `json:"Pages"`
			} `json:"Response"`
		}
		err := c.apiGet(ctx, next, accessToken, accessTokenSecret, &out)
		if err != nil {
			return nil, err
		}
		all = append(all, out.Response.Album...)
		next = c.absoluteURL(out.Response.Pages.NextPage)
	}
	return all, nil
}

// AlbumImages walks all image pages of one album.
func (c *Client) AlbumImages(ctx context.Context, accessToken, accessTokenSecret, albumKey string) ([]AlbumImage, error) {
	all := []AlbumImage{}
	next := c.APIURL + "/api/v2/album/" + albumKey + "!images?count=100"
	for next != "" {
		var out struct {
			Response struct {
				AlbumImage []AlbumImage `json:"AlbumImage"`
				Pages      pages        `json:"Pages"`
			} `json:"Response"`
		}
		err := c.apiGet(ctx, next, accessToken, accessTokenSecret, &out)
		if err != nil {
			return nil, err
		}
		all = append(all, out.Response.AlbumImage...)
		next = c.absoluteURL(out.Response.Pages.NextPage)
	}
	return all, nil
}

// LargestImageDownloadURL chains the two metadata fetches needed per image:
// the image resource yields the largest-image resource uri, which in turn
// yields the pre-authorized direct download url.
func (c *Client) LargestImageDownloadURL(ctx context.Context, accessToken, accessTokenSecret string, image AlbumImage) (string, error) {
	var meta struct {
		Response struct {
			AlbumImage *imageMeta `json:"AlbumImage"`
			Image      *imageMeta `json:"Image"`
		} `json:"Response"`
	}
	err := c.apiGet(ctx, c.absoluteURL(image.URI), accessToken, accessTokenSecret, &meta)
	if err != nil {
		return "", err
	}
	largestURI := ""
	if meta.Response.AlbumImage != nil {
		largestURI = meta.Response.AlbumImage.Uris.LargestImage.URI
	}
	if largestURI == "" && meta.Response.Image != nil {
		largestURI = meta.Response.Image.Uris.LargestImage.URI
	}
	if largestURI == "" {
		return "", ErrMissingImageURI
	}

	var largest struct {
		Response struct {
			LargestImage struct {
				URL string `json:"Url"`
			} `json:"LargestImage"`
		} `json:"Response"`
	}
	err = c.apiGet(ctx, c.absoluteURL(largestURI), accessToken, accessTokenSecret, &largest)
	if err != nil {
		return "", err
	}
	if largest.Response.LargestImage.URL == "" {
		return "", ErrMissingDownloadURL
	}
	return largest.Response.LargestImage.URL, nil
}

type imageMeta struct {
	Uris struct {
		LargestImage struct {
			URI string `json:"Uri"`
		} `json:"LargestImage"`
	} `json:"Uris"`
}

// absoluteURL resolves the relative uris the API returns against the API
// host.
func (c *Client) absoluteURL(uri string) string {
	if uri == "" || strings.HasPrefix(uri, "http") {
		return uri
	}
	return c.APIURL + uri
}
