// Package storage brokers media uploads. The API never receives image
// bytes itself; it hands the client a time-limited pre-signed URL scoped to
// a single PUT against the bucket.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// uploadURLTTL bounds how long an issued upload URL stays usable.
const uploadURLTTL = 1000 * time.Second

// URLIssuer is what handlers need from the upload broker.
type URLIssuer interface {
	UploadURL(ctx context.Context) (string, error)
}

// Uploader issues pre-signed S3 PUT URLs for banner and profile images.
type Uploader struct {
	presign *s3.PresignClient
	bucket  string
}

// NewUploader builds an Uploader from static credentials. Region, keys and
// bucket come from the environment.
func NewUploader(ctx context.Context, region, accessKey, secretKey, bucket string) (*Uploader, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return &Uploader{
		presign: s3.NewPresignClient(client),
		bucket:  bucket,
	}, nil
}

// UploadURL returns a pre-signed URL permitting one JPEG PUT under a
// randomized object key. Nothing about the uploaded content is validated
// server-side beyond the content type baked into the signature.
func (u *Uploader) UploadURL(ctx context.Context) (string, error) {
	key := fmt.Sprintf("%s-%d.jpeg", uuid.NewString(), time.Now().Unix())

	req, err := u.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		ContentType: aws.String("image/jpeg"),
	}, s3.WithPresignExpires(uploadURLTTL))
	if err != nil {
		return "", fmt.Errorf("presigning upload for %q: %w", key, err)
	}

	return req.URL, nil
}
