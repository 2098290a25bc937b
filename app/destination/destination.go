// Author: SGS Locations (2026). Apache 2.0 License

// Package destination re-hosts imported images in the site's S3 bucket and
// computes the public urls the property pages embed.
package destination

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"photosync/app/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	cfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/google/uuid"
)

func newS3Client(ctx context.Context) (*s3.Client, error) {
	s3cfg := config.GetConfig().Options.S3Config
	awsConfig, err := cfg.LoadDefaultConfig(ctx,
		cfg.WithRegion(s3cfg.AWSRegion),
	)
	if err != nil {
		return nil, err
	}
	return s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if s3cfg.AWSEndpoint != "" {
			o.BaseEndpoint = aws.String(s3cfg.AWSEndpoint)
		}
		o.UsePathStyle = s3cfg.AWSPathstyle
	}), nil
}

// GenerateKey returns a globally-unique destination key under the configured
// folder prefix. Imported images are always stored as .jpg.
func GenerateKey() string {
	return config.GetConfig().Options.UploadFolder + "/" + uuid.NewString() + ".jpg"
}

// UploadImage stores one image publicly readable under the given key and
// returns its public url.
func UploadImage(ctx context.Context, key string, body io.Reader) (string, error) {
	client, err := newS3Client(ctx)
	if err != nil {
		return "", fmt.Errorf("storage setup failed: %v", err)
	}
	uploader := manager.NewUploader(client)
	_, err = uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(config.GetConfig().Options.S3Config.AWSBucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String("image/jpeg"),
		ACL:         s3types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("storage error %s: %s", apiErr.ErrorCode(), apiErr.ErrorMessage())
		}
		return "", fmt.Errorf("upload failed: %v", err)
	}
	return PublicURL(key), nil
}

// PublicURL prefers the CDN domain when one is configured, else points at
// the storage service directly.
func PublicURL(key string) string {
	opts := config.GetConfig().Options
	if opts.CDNDomain != "" {
		return "https://" + strings.TrimSuffix(opts.CDNDomain, "/") + "/" + key
	}
	if opts.S3Config.AWSEndpoint != "" {
		return strings.TrimSuffix(opts.S3Config.AWSEndpoint, "/") + "/" + opts.S3Config.AWSBucket + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", opts.S3Config.AWSBucket, opts.S3Config.AWSRegion, key)
}
