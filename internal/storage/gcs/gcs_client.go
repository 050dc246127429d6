// Package gcs publishes documents to a Google Cloud Storage (Firebase) bucket.
package gcs

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"bizdocs/internal/config"
	"bizdocs/internal/port"
)

type gcsClient struct {
	client *storage.Client
}

// NewGCSClient creates a GCS-backed ObjectStorage. Application default
// credentials are used unless a service account file is configured.
func NewGCSClient(ctx context.Context, cfg *config.StorageConfig) (port.ObjectStorage, io.Closer, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint), option.WithoutAuthentication())
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("creating gcs client: %w", err)
	}
	return &gcsClient{client: client}, client, nil
}

func (c *gcsClient) Upload(ctx context.Context, input port.UploadInput) (*port.UploadOutput, error) {
	obj := c.client.Bucket(input.Bucket).Object(input.Key)
	w := obj.NewWriter(ctx)
	w.ContentType = input.ContentType

	if _, err := io.Copy(w, input.Body); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("gcs upload: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("gcs upload close: %w", err)
	}

	attrs := w.Attrs()
	out := &port.UploadOutput{Location: fmt.Sprintf("gs://%s/%s", input.Bucket, input.Key)}
	if attrs != nil {
		out.ETag = attrs.Etag
	}
	return out, nil
}

func (c *gcsClient) MakePublic(ctx context.Context, bucket, key string) (string, error) {
	acl := c.client.Bucket(bucket).Object(key).ACL()
	if err := acl.Set(ctx, storage.AllUsers, storage.RoleReader); err != nil {
		return "", fmt.Errorf("gcs make public: %w", err)
	}
	return PublicURL(bucket, key), nil
}

// PublicURL is the anonymous HTTPS address of an object.
func PublicURL(bucket, key string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, key)
}
