// Package storage persists uploaded files to S3-compatible object storage
// and hands back their public URLs.
package storage

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

type Uploader interface {
	Upload(key, contentType string, body io.ReadSeeker) (string, error)
}

type Options struct {
	Region    string
	Endpoint  string
	Bucket    string
	PublicURL string
}

type s3Uploader struct {
	client    *s3.S3
	bucket    string
	publicURL string
}

func New(opts Options) (Uploader, error) {
	cfg := &aws.Config{
		Region:           aws.String(opts.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if opts.Endpoint != "" {
		cfg.Endpoint = aws.String(opts.Endpoint)
	}

	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, err
	}

	return &s3Uploader{
		client:    s3.New(sess),
		bucket:    opts.Bucket,
		publicURL: strings.TrimSuffix(opts.PublicURL, "/"),
	}, nil
}

func (u *s3Uploader) Upload(key, contentType string, body io.ReadSeeker) (string, error) {
	_, err := u.client.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}

	return u.publicURL + "/" + key, nil
}

// BuildKey lays uploads out by owning entity, timestamped so names never
// collide: servers/<id>/<ms>_<name>.
func BuildKey(uploadType, entityID, filename string) string {
	return fmt.Sprintf("%ss/%s/%d_%s", uploadType, entityID, time.Now().UnixMilli(), filename)
}
