// Package storage uploads generated quotation files to an S3-compatible bucket such as
// Cloudflare R2.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ErrIncompleteConfig is returned when a required R2 setting is missing.
var ErrIncompleteConfig = errors.New("r2 endpoint, credentials and bucket are required")

// Config locates the bucket.
type Config struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	PublicBaseURL string
}

// R2Client uploads objects and returns their public URL.
type R2Client struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

// NewR2Client builds a client for cfg.
func NewR2Client(ctx context.Context, cfg Config) (*R2Client, error) {
	if cfg.Endpoint == "" || cfg.AccessKey == "" || cfg.SecretKey == "" || cfg.Bucket == "" {
		return nil, ErrIncompleteConfig
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(
		ctx,
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load r2 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
	})

	baseURL := strings.TrimRight(cfg.PublicBaseURL, "/")
	if baseURL == "" {
		baseURL = strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	}

	return &R2Client{client: client, bucket: cfg.Bucket, baseURL: baseURL}, nil
}

// Upload stores body under key and returns the public URL.
func (r *R2Client) Upload(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	_, err := r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	return r.PublicURL(key), nil
}

// PublicURL is the address an uploaded key is served from.
func (r *R2Client) PublicURL(key string) string {
	return fmt.Sprintf("%s/%s", r.baseURL, strings.TrimLeft(key, "/"))
}

// QuoteKey is the object key for a quotation file, e.g. quotes/QU123456/Jo_Smith_Quote_QU123456.pdf.
func QuoteKey(quoteNumber, fileName string) string {
	return "quotes/" + quoteNumber + "/" + fileName
}
