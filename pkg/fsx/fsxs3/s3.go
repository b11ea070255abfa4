// Package fsxs3 implements fsx.FileSystem on top of Amazon S3.
package fsxs3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/hotgigs/talent/pkg/errx"
	"github.com/hotgigs/talent/pkg/fsx"
)

// S3FileSystem stores files as objects under a key prefix in one bucket.
type S3FileSystem struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3FileSystem creates an S3-backed file system. The prefix is
// prepended to every path.
func NewS3FileSystem(client *s3.Client, bucket, prefix string) *S3FileSystem {
	return &S3FileSystem{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}
}

var _ fsx.FileSystem = (*S3FileSystem)(nil)

func (s *S3FileSystem) key(path string) string {
	path = strings.TrimPrefix(path, "/")
	if s.prefix == "" {
		return path
	}
	return s.prefix + "/" + path
}

// Join builds an S3 key from segments.
func (s *S3FileSystem) Join(parts ...string) string {
	cleaned := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(p, "/")
		if p != "" {
			cleaned = append(cleaned, p)
		}
	}
	return strings.Join(cleaned, "/")
}

// WriteFile uploads data as a single object.
func (s *S3FileSystem) WriteFile(ctx context.Context, path string, data []byte) error {
	return s.WriteFileStream(ctx, path, bytes.NewReader(data))
}

// WriteFileStream uploads the reader's contents as a single object.
func (s *S3FileSystem) WriteFileStream(ctx context.Context, path string, r io.Reader) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(path)),
		Body:   r,
	})
	if err != nil {
		return errx.Wrap(err, "failed to write file to s3", errx.TypeExternal).
			WithDetail("path", path)
	}
	return nil
}

// ReadFile downloads a whole object.
func (s *S3FileSystem) ReadFile(ctx context.Context, path string) ([]byte, error) {
	rc, err := s.ReadFileStream(ctx, path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, errx.Wrap(err, "failed to read file from s3", errx.TypeExternal).
			WithDetail("path", path)
	}
	return data, nil
}

// ReadFileStream opens an object for streaming reads. The caller owns
// the returned closer.
func (s *S3FileSystem) ReadFileStream(ctx context.Context, path string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(path)),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, errx.Wrap(err, "file not found", errx.TypeNotFound).
				WithDetail("path", path)
		}
		return nil, errx.Wrap(err, "failed to open file from s3", errx.TypeExternal).
			WithDetail("path", path)
	}
	return out.Body, nil
}

// DeleteFile removes an object. Deleting a missing object is not an
// error on S3.
func (s *S3FileSystem) DeleteFile(ctx context.Context, path string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(path)),
	})
	if err != nil {
		return errx.Wrap(err, "failed to delete file from s3", errx.TypeExternal).
			WithDetail("path", path)
	}
	return nil
}

// Exists checks object presence via a HEAD request.
func (s *S3FileSystem) Exists(ctx context.Context, path string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(path)),
	})
	if err != nil {
		var nf *types.NotFound
		if errors.As(err, &nf) {
			return false, nil
		}
		return false, errx.Wrap(err, "failed to check file on s3", errx.TypeExternal).
			WithDetail("path", path)
	}
	return true, nil
}
