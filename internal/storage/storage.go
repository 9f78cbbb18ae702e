// Package storage holds the uploaded video binaries for the dev gateway,
// either on local disk or in a DigitalOcean Spaces bucket. Saved videos
// land under videos/ so the returned URL matches the source convention
// the console expects.
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/rs/zerolog/log"
)

// Storage persists an uploaded video and returns the URL to embed as a
// MediaItem source.
type Storage interface {
	SaveVideo(fileHeader *multipart.FileHeader) (string, error)
}

const videosPrefix = "videos/"

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// normalizeFilename strips problematic characters from an uploaded file
// name, keeping the extension.
func normalizeFilename(original string) string {
	ext := filepath.Ext(original)
	base := strings.TrimSuffix(original, ext)
	base = strings.ReplaceAll(base, " ", "_")
	base = unsafeChars.ReplaceAllString(base, "")
	if base == "" {
		base = "video"
	}
	return base + ext
}

// LocalStorage writes videos under uploadDir/videos.
type LocalStorage struct {
	uploadDir string
}

func NewLocalStorage(uploadDir string) *LocalStorage {
	return &LocalStorage{uploadDir: uploadDir}
}

func (ls *LocalStorage) SaveVideo(fileHeader *multipart.FileHeader) (string, error) {
	name := normalizeFilename(fileHeader.Filename)
	dir := filepath.Join(ls.uploadDir, "videos")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	log.Debug().Str("original", fileHeader.Filename).Str("stored", name).Msg("video saved locally")
	return videosPrefix + name, nil
}

// SpacesStorage uploads videos to a DigitalOcean Spaces bucket fronted by
// a CDN.
type SpacesStorage struct {
	client *s3.S3
	bucket string
	cdnURL string
}

func NewSpacesStorage(endpoint, region, bucket, cdnURL, accessKey, secretKey string) (*SpacesStorage, error) {
	config := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(accessKey, secretKey, ""),
		Endpoint:         aws.String(endpoint),
		Region:           aws.String(region),
		S3ForcePathStyle: aws.Bool(false),
	}
	sess, err := session.NewSession(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return &SpacesStorage{
		client: s3.New(sess),
		bucket: bucket,
		cdnURL: strings.TrimSuffix(cdnURL, "/"),
	}, nil
}

func (ss *SpacesStorage) SaveVideo(fileHeader *multipart.FileHeader) (string, error) {
	name := normalizeFilename(fileHeader.Filename)
	key := videosPrefix + name

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	_, err = ss.client.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(ss.bucket),
		Key:         aws.String(key),
		Body:        src,
		ContentType: aws.String("video/mp4"),
		ACL:         aws.String("public-read"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to spaces: %w", err)
	}

	log.Debug().Str("key", key).Msg("video uploaded to spaces")
	return ss.cdnURL + "/" + key, nil
}
