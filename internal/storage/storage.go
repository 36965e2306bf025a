package storage

import (
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Multipart field names the API recognizes; everything else is
// rejected.
const (
	FieldImages = "imageFiles"
	FieldVideo  = "videoFile"
)

// MaxFileSize caps a single uploaded file at 500 MB.
const MaxFileSize = 500 * 1024 * 1024

// MaxImageFiles bounds the image parts of a single project draft; one
// optional video part comes on top of that.
const MaxImageFiles = 10

// MaxRequestBody sizes the HTTP body limit for the worst legal draft:
// every image plus the video at the per-file cap, with headroom for
// form fields and multipart framing.
const MaxRequestBody = (MaxImageFiles+1)*MaxFileSize + 10*1024*1024

var (
	ErrUnsupportedMedia = errors.New("unsupported media type")
	ErrFileTooLarge     = fmt.Errorf("file exceeds the %d MB limit", MaxFileSize/(1024*1024))
)

// Per-field content-type allow-lists.
var allowedTypes = map[string]map[string]bool{
	FieldImages: {
		"image/jpeg":    true,
		"image/png":     true,
		"image/gif":     true,
		"image/webp":    true,
		"image/svg+xml": true,
	},
	FieldVideo: {
		"video/mp4":       true,
		"video/avi":       true,
		"video/quicktime": true,
		"video/x-msvideo": true,
		"video/webm":      true,
	},
}

// subdirs keeps images and videos apart on disk and in the bucket.
var subdirs = map[string]string{
	FieldImages: "images",
	FieldVideo:  "videos",
}

// Store persists one uploaded file and returns the public path or URL
// clients should use to reach it.
type Store interface {
	Save(field string, fh *multipart.FileHeader) (string, error)
}

// Uploads is the process-wide store, selected by Init.
var Uploads Store

// Init picks the storage backend from STORAGE_DRIVER ("local" by
// default, "minio" for object storage).
func Init() {
	switch os.Getenv("STORAGE_DRIVER") {
	case "minio":
		Uploads = initMinioStore()
	default:
		dir := os.Getenv("UPLOAD_DIR")
		if dir == "" {
			dir = "uploads"
		}
		store, err := NewLocalStore(dir)
		if err != nil {
			log.Fatalf("Failed to prepare upload directory: %v", err)
		}
		Uploads = store
		log.Printf("Storing uploads under %s", dir)
	}
}

// CheckUpload validates field name, size and content type before any
// byte is written. Callers with several files can reject the whole
// batch up front instead of failing midway through the saves.
func CheckUpload(field string, fh *multipart.FileHeader) error {
	allowed, ok := allowedTypes[field]
	if !ok {
		return fmt.Errorf("%w: unknown upload field %q", ErrUnsupportedMedia, field)
	}
	if fh.Size > MaxFileSize {
		return ErrFileTooLarge
	}
	contentType := fh.Header.Get("Content-Type")
	if !allowed[contentType] {
		return fmt.Errorf("%w: %s is not allowed for %s", ErrUnsupportedMedia, contentType, field)
	}
	return nil
}

// uploadName builds a collision-free filename: field, millisecond
// timestamp and a random suffix, keeping the original extension.
func uploadName(field, original string) string {
	return fmt.Sprintf("%s-%d-%s%s", field, time.Now().UnixMilli(), uuid.NewString()[:8], filepath.Ext(original))
}
