// Package storage wraps the S3-compatible object store (MinIO in the
// default deployment) behind a small gateway: uploads under a folder
// prefix, deletes by key, metadata reads and folder listings.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site-backend/config"
	"github.com/rpupo63/portfolio-site-backend/errs"
)

// Upload folders. Every object key is scoped under one of these.
const (
	FolderImages    = "images"
	FolderVideos    = "videos"
	FolderDocuments = "documents"
)

// CandidateFolders is the order in which DeleteByFilename probes for a
// legacy file whose folder was never recorded.
var CandidateFolders = []string{FolderImages, FolderVideos, FolderDocuments}

const cacheControl = "public, max-age=31536000"

// UploadResult describes a stored object.
type UploadResult struct {
	Key          string `json:"key"`
	URL          string `json:"url"`
	OriginalName string `json:"originalName"`
	Size         int64  `json:"size"`
	ContentType  string `json:"contentType"`
}

// ObjectInfo is the metadata view of a stored object.
type ObjectInfo struct {
	Key          string            `json:"key"`
	Size         int64             `json:"size"`
	ContentType  string            `json:"contentType,omitempty"`
	LastModified time.Time         `json:"lastModified"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// Gateway is the injectable object-store client. It is constructed in
// main and handed to the API layer; there is no package-level handle.
type Gateway struct {
	client    *s3.Client
	bucket    string
	publicURL string
	logger    zerolog.Logger
}

// New builds a Gateway against the configured S3-compatible endpoint,
// using path-style addressing as MinIO expects.
func New(ctx context.Context, cfg *config.Config) (*Gateway, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.StorageRegion),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.StorageAccessKey, cfg.StorageSecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("loading storage credentials: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.StorageEndpoint)
		o.UsePathStyle = true
	})

	return &Gateway{
		client:    client,
		bucket:    cfg.StorageBucket,
		publicURL: strings.TrimSuffix(cfg.StoragePublicURL, "/"),
		logger:    log.With().Str("component", "storage").Logger(),
	}, nil
}

// WaitForReady polls the bucket until the storage service answers,
// creating the bucket on first contact if it does not exist yet. Used
// only at startup; uploads have no retry policy of their own.
func (g *Gateway) WaitForReady(ctx context.Context, attempts int, delay time.Duration) error {
	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		_, err := g.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(g.bucket)})
		if err == nil {
			return nil
		}
		if isNotFound(err) {
			_, err = g.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(g.bucket)})
			if err == nil {
				g.logger.Info().Str("bucket", g.bucket).Msg("created storage bucket")
				return nil
			}
		}

		lastErr = err
		g.logger.Warn().Err(err).Int("attempt", i+1).Msg("storage not ready")
	}
	return fmt.Errorf("%w: %s", errs.ErrStorageUnreachable, lastErr)
}

// Upload stores content under a randomized key scoped to folder and
// returns the stored object's key and public URL. The original file
// extension is preserved on the key.
func (g *Gateway) Upload(ctx context.Context, content []byte, originalName, contentType, folder string) (UploadResult, error) {
	key := objectKey(folder, originalName)

	_, err := g.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(g.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(content),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(content))),
		CacheControl:  aws.String(cacheControl),
		Metadata: map[string]string{
			"original-name": originalName,
			"uploaded-at":   time.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return UploadResult{}, fmt.Errorf("uploading %s: %w", key, err)
	}

	return UploadResult{
		Key:          key,
		URL:          g.PublicURL(key),
		OriginalName: originalName,
		Size:         int64(len(content)),
		ContentType:  contentType,
	}, nil
}

// Delete removes one object by exact key.
func (g *Gateway) Delete(ctx context.Context, key string) error {
	_, err := g.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(g.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("deleting %s: %w", key, err)
	}
	return nil
}

// DeleteByFilename removes a file whose folder was never recorded,
// probing each candidate folder prefix in turn. Returns the key that
// was actually deleted, or ErrObjectNotFound when no folder holds the
// filename.
func (g *Gateway) DeleteByFilename(ctx context.Context, filename string) (string, error) {
	for _, folder := range CandidateFolders {
		key := folder + "/" + filename
		if _, err := g.Stat(ctx, key); err != nil {
			if errors.Is(err, errs.ErrObjectNotFound) {
				continue
			}
			return "", err
		}
		if err := g.Delete(ctx, key); err != nil {
			return "", err
		}
		return key, nil
	}
	return "", fmt.Errorf("%s: %w", filename, errs.ErrObjectNotFound)
}

// Stat returns the metadata of one object by exact key.
func (g *Gateway) Stat(ctx context.Context, key string) (ObjectInfo, error) {
	head, err := g.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(g.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return ObjectInfo{}, fmt.Errorf("%s: %w", key, errs.ErrObjectNotFound)
		}
		return ObjectInfo{}, fmt.Errorf("stat %s: %w", key, err)
	}

	info := ObjectInfo{
		Key:      key,
		Size:     aws.ToInt64(head.ContentLength),
		Metadata: head.Metadata,
	}
	if head.ContentType != nil {
		info.ContentType = *head.ContentType
	}
	if head.LastModified != nil {
		info.LastModified = *head.LastModified
	}
	return info, nil
}

// List returns the objects stored under a folder prefix.
func (g *Gateway) List(ctx context.Context, folder string) ([]ObjectInfo, error) {
	out, err := g.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(g.bucket),
		Prefix: aws.String(folder + "/"),
	})
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", folder, err)
	}

	objects := make([]ObjectInfo, 0, len(out.Contents))
	for _, obj := range out.Contents {
		info := ObjectInfo{
			Key:  aws.ToString(obj.Key),
			Size: aws.ToInt64(obj.Size),
		}
		if obj.LastModified != nil {
			info.LastModified = *obj.LastModified
		}
		objects = append(objects, info)
	}
	return objects, nil
}

// PublicURL builds the deterministic public URL for a stored key.
func (g *Gateway) PublicURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", g.publicURL, g.bucket, key)
}

// objectKey builds a stored object's key: folder prefix, random uuid,
// and the original file extension lowercased.
func objectKey(folder, originalName string) string {
	return fmt.Sprintf("%s/%s%s", folder, uuid.NewString(), strings.ToLower(path.Ext(originalName)))
}

// isNotFound reports whether err is the storage service saying the
// object or bucket does not exist.
func isNotFound(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound", "NoSuchBucket", "404":
			return true
		}
	}
	return false
}
