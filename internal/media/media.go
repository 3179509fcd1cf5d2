// Package media stores uploaded images in object storage and records them as
// Image rows.
package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/TatsianaKryshtofik/Test-project/models"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// ErrEmptyUpload is returned for zero-length uploads.
var ErrEmptyUpload = errors.New("empty upload")

// ObjectStorage is the part of the S3 API the uploader needs.
type ObjectStorage interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Measurer reports the pixel dimensions of encoded image data.
type Measurer interface {
	Size(data []byte) (width, height int, err error)
}

// ImageStore persists Image rows.
type ImageStore interface {
	CreateImage(ctx context.Context, img *models.Image) error
	GetImage(ctx context.Context, id uint) (*models.Image, error)
	DeleteImage(ctx context.Context, id uint) error
}

type Uploader struct {
	objects   ObjectStorage
	measurer  Measurer
	images    ImageStore
	bucket    string
	publicURL string
}

// NewUploader builds an Uploader. publicURL is a printf pattern with one %s that
// turns an object key into its public URL.
func NewUploader(objects ObjectStorage, measurer Measurer, images ImageStore, bucket, publicURL string) *Uploader {
	return &Uploader{
		objects:   objects,
		measurer:  measurer,
		images:    images,
		bucket:    bucket,
		publicURL: publicURL,
	}
}

// Upload stores data under a fresh key and records it as an Image whose length is
// the pixel height and width the pixel width.
func (u *Uploader) Upload(ctx context.Context, filename, contentType string, data []byte) (*models.Image, error) {
	if len(data) == 0 {
		return nil, ErrEmptyUpload
	}
	width, height, err := u.measurer.Size(data)
	if err != nil {
		return nil, fmt.Errorf("read image size: %w", err)
	}

	key := ObjectKey(uuid.New(), filename)
	obj, err := u.objects.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", key, err)
	}
	log.Printf("Image uploaded: %s, ETag: %s", key, aws.ToString(obj.ETag))

	img := &models.Image{
		ImageURL: CleanURL(fmt.Sprintf(u.publicURL, key)),
		Length:   strconv.Itoa(height),
		Width:    strconv.Itoa(width),
	}
	if err := u.images.CreateImage(ctx, img); err != nil {
		if derr := u.deleteObject(ctx, key); derr != nil {
			log.Printf("Failed to remove orphaned object %s: %v", key, derr)
		}
		return nil, err
	}
	return img, nil
}

// Remove deletes the Image row, with everything that cascades from it, and then
// the stored object.
func (u *Uploader) Remove(ctx context.Context, id uint) error {
	img, err := u.images.GetImage(ctx, id)
	if err != nil {
		return err
	}
	if err := u.images.DeleteImage(ctx, id); err != nil {
		return err
	}

	key, ok := u.keyFromURL(img.ImageURL)
	if !ok {
		log.Printf("Image %d at %s is not in bucket %s, leaving object in place", id, img.ImageURL, u.bucket)
		return nil
	}
	return u.deleteObject(ctx, key)
}

func (u *Uploader) deleteObject(ctx context.Context, key string) error {
	_, err := u.objects.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// keyFromURL reverses the public URL pattern.
func (u *Uploader) keyFromURL(imageURL string) (string, bool) {
	prefix, suffix, found := strings.Cut(u.publicURL, "%s")
	if !found {
		return "", false
	}
	prefix = CleanURL(prefix)
	if !strings.HasPrefix(imageURL, prefix) || !strings.HasSuffix(imageURL, suffix) {
		return "", false
	}
	key := strings.TrimSuffix(strings.TrimPrefix(imageURL, prefix), suffix)
	if key == "" {
		return "", false
	}
	if unescaped, err := url.PathUnescape(key); err == nil {
		key = unescaped
	}
	return key, true
}

// ObjectKey names the object for an upload. Only the extension of the original
// file name is kept so that the resulting URL stays short.
func ObjectKey(id uuid.UUID, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	if len(ext) > 8 || strings.ContainsAny(ext, " /\\%") {
		ext = ""
	}
	return "images/" + id.String() + ext
}

func CleanURL(urlStr string) string {
	urlStr = strings.ReplaceAll(urlStr, " ", "%20")
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return urlStr
	}

	return parsedURL.String()
}
