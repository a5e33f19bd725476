package storage

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Upload size caps. Enforced here so every caller gets the same policy.
const (
	MaxImageSize = 10 << 20  // 10MB
	MaxVideoSize = 200 << 20 // 200MB
)

// FileKind selects the bucket prefix and validation rules for an upload.
type FileKind string

const (
	FileKindAvatar    FileKind = "avatars"
	FileKindGymLogo   FileKind = "gyms"
	FileKindPostMedia FileKind = "posts"
	FileKindVideo     FileKind = "videos"
)

// S3Uploader handles media uploads to AWS S3
type S3Uploader struct {
	client  *s3.Client
	bucket  string
	region  string
	baseURL string
}

// UploadResult contains the result of an S3 upload
type UploadResult struct {
	Key    string `json:"key"`
	URL    string `json:"url"`
	Bucket string `json:"bucket"`
	Size   int64  `json:"size"`
}

// NewS3Uploader creates a new S3 uploader
func NewS3Uploader(region, bucket, baseURL string) (*S3Uploader, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &S3Uploader{
		client:  s3.NewFromConfig(cfg),
		bucket:  bucket,
		region:  region,
		baseURL: baseURL,
	}, nil
}

// ValidateUpload checks content type and size before any bytes hit the
// network. Avatars, gym logos, and post media must be images; the videos
// prefix takes video MIME types with a larger cap.
func ValidateUpload(kind FileKind, contentType string, size int64) error {
	switch kind {
	case FileKindVideo:
		if !strings.HasPrefix(contentType, "video/") {
			return fmt.Errorf("invalid content type %q: expected video/*", contentType)
		}
		if size > MaxVideoSize {
			return fmt.Errorf("video too large: %d bytes (max %d)", size, int64(MaxVideoSize))
		}
	case FileKindAvatar, FileKindGymLogo, FileKindPostMedia:
		if strings.HasPrefix(contentType, "video/") && kind == FileKindPostMedia {
			// Post media accepts short clips too
			if size > MaxVideoSize {
				return fmt.Errorf("video too large: %d bytes (max %d)", size, int64(MaxVideoSize))
			}
			return nil
		}
		if !strings.HasPrefix(contentType, "image/") {
			return fmt.Errorf("invalid content type %q: expected image/*", contentType)
		}
		if size > MaxImageSize {
			return fmt.Errorf("image too large: %d bytes (max %d)", size, int64(MaxImageSize))
		}
	default:
		return fmt.Errorf("unknown file kind %q", kind)
	}
	return nil
}

// Upload validates and stores a file, returning its public URL.
// Keys are laid out as {kind}/{userID}/{uuid}{ext} so per-user cleanup
// stays a prefix listing.
func (u *S3Uploader) Upload(ctx context.Context, kind FileKind, data []byte, userID, originalFilename, contentType string) (*UploadResult, error) {
	if err := ValidateUpload(kind, contentType, int64(len(data))); err != nil {
		return nil, err
	}

	extension := filepath.Ext(originalFilename)
	key := fmt.Sprintf("%s/%s/%s%s", kind, userID, uuid.New().String(), extension)

	putObjectInput := &s3.PutObjectInput{
		Bucket:       aws.String(u.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(data),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("max-age=86400"),
		Metadata: map[string]string{
			"user-id":           userID,
			"original-filename": originalFilename,
			"upload-timestamp":  time.Now().Format(time.RFC3339),
		},
	}

	if _, err := u.client.PutObject(ctx, putObjectInput); err != nil {
		return nil, fmt.Errorf("failed to upload to S3: %w", err)
	}

	return &UploadResult{
		Key:    key,
		URL:    u.PublicURL(key),
		Bucket: u.bucket,
		Size:   int64(len(data)),
	}, nil
}

// PublicURL returns the CDN-facing URL for a stored key.
func (u *S3Uploader) PublicURL(key string) string {
	return fmt.Sprintf("%s/%s", strings.TrimSuffix(u.baseURL, "/"), key)
}

// DeleteFile deletes a file from S3
func (u *S3Uploader) DeleteFile(ctx context.Context, key string) error {
	_, err := u.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from S3: %w", err)
	}
	return nil
}

// CheckBucketAccess verifies that we can access the S3 bucket
func (u *S3Uploader) CheckBucketAccess(ctx context.Context) error {
	_, err := u.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(u.bucket),
	})
	if err != nil {
		return fmt.Errorf("cannot access S3 bucket %s: %w", u.bucket, err)
	}
	return nil
}
