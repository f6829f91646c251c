package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// BlobStore persists uploaded files and resolves their public URLs
type BlobStore interface {
	// Put uploads data under key and returns its public URL
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)

	// URL returns the public URL an object stored under key would have
	URL(key string) string
}

// Ensure S3BlobStore implements the interface.
var _ BlobStore = (*S3BlobStore)(nil)

// S3BlobStore stores files in an S3-compatible bucket
type S3BlobStore struct {
	s3Client  s3iface.S3API
	bucket    string
	publicURL string
}

// Config holds configuration for the S3 blob store
type Config struct {
	Endpoint        string
	AccessKeyID     string
	AccessKeySecret string
	Bucket          string
	Region          string
	// PublicURL is the base URL objects are served from; defaults to
	// <Endpoint>/<Bucket>
	PublicURL string
}

// Configured reports whether enough settings are present to build a store
func (c *Config) Configured() bool {
	return c.Endpoint != "" && c.AccessKeyID != "" && c.AccessKeySecret != ""
}

// NewS3BlobStore creates a new S3 blob store
func NewS3BlobStore(config *Config) (*S3BlobStore, error) {
	if !config.Configured() {
		return nil, fmt.Errorf("S3 configuration is incomplete")
	}

	if config.Bucket == "" {
		return nil, fmt.Errorf("S3 bucket is not configured")
	}

	sess, err := session.NewSession(&aws.Config{
		Region:           aws.String(config.Region),
		Endpoint:         aws.String(config.Endpoint),
		Credentials:      credentials.NewStaticCredentials(config.AccessKeyID, config.AccessKeySecret, ""),
		S3ForcePathStyle: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}

	return newS3BlobStore(s3.New(sess), config), nil
}

func newS3BlobStore(client s3iface.S3API, config *Config) *S3BlobStore {
	publicURL := config.PublicURL
	if publicURL == "" {
		publicURL = strings.TrimRight(config.Endpoint, "/") + "/" + config.Bucket
	}
	return &S3BlobStore{
		s3Client:  client,
		bucket:    config.Bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

// Put uploads a file to S3 and returns the public URL
func (s *S3BlobStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.s3Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return s.URL(key), nil
}

// URL returns the public URL of key
func (s *S3BlobStore) URL(key string) string {
	return fmt.Sprintf("%s/%s", s.publicURL, key)
}

// ObjectKey returns the key a PDF with fileID is stored under
func ObjectKey(fileID string) string {
	return fileID + ".pdf"
}

// URLFunc adapts a function to the URL half of BlobStore
type URLFunc func(key string) string

// URL calls f(key)
func (f URLFunc) URL(key string) string {
	return f(key)
}
