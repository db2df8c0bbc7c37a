package helpers

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
)

// PublicUploadPrefix is the URL prefix the upload root is served under.
const PublicUploadPrefix = "/uploads"

type UploadConfig struct {
	MaxSizeBytes     int64
	AllowedMimeTypes []string
}

var (
	DefaultImageUploadConfig = UploadConfig{
		MaxSizeBytes: 5 * 1024 * 1024, // 5MB
		AllowedMimeTypes: []string{
			"image/jpeg",
			"image/png",
			"image/gif",
			"image/webp",
		},
	}

	DefaultVideoUploadConfig = UploadConfig{
		MaxSizeBytes: 200 * 1024 * 1024, // 200MB
		AllowedMimeTypes: []string{
			"video/mp4",
			"video/webm",
			"video/quicktime",
		},
	}
)

// Upload directories, one per entity type.
const (
	UploadEvents     = "events"
	UploadMembers    = "members"
	UploadTeams      = "teams"
	UploadGames      = "games"
	UploadNews       = "news"
	UploadPartners   = "partners"
	UploadProducts   = "products"
	UploadVideos     = "videos"
	UploadThumbnails = "thumbnails"
)

var uploadDirs = map[string]UploadConfig{
	UploadEvents:     DefaultImageUploadConfig,
	UploadMembers:    DefaultImageUploadConfig,
	UploadTeams:      DefaultImageUploadConfig,
	UploadGames:      DefaultImageUploadConfig,
	UploadNews:       DefaultImageUploadConfig,
	UploadPartners:   DefaultImageUploadConfig,
	UploadProducts:   DefaultImageUploadConfig,
	UploadVideos:     DefaultVideoUploadConfig,
	UploadThumbnails: DefaultImageUploadConfig,
}

var ErrUnknownUploadType = errors.New("unknown upload type")

func IsUploadType(uploadType string) bool {
	_, ok := uploadDirs[uploadType]
	return ok
}

type Uploader struct {
	Root string
}

func NewUploader(root string) *Uploader {
	return &Uploader{Root: root}
}

// UploadFile stores the file under <root>/<uploadType>/ and returns its
// public path, e.g. /uploads/events/finals-1718000000000-123456.png.
func (u *Uploader) UploadFile(c *gin.Context, fileHeader *multipart.FileHeader, uploadType string) (string, error) {
	config, ok := uploadDirs[uploadType]
	if !ok {
		return "", ErrUnknownUploadType
	}

	if fileHeader.Size > config.MaxSizeBytes {
		return "", fmt.Errorf("file size exceeds maximum limit of %d MB", config.MaxSizeBytes/(1024*1024))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	buffer := make([]byte, 3072)
	n, err := io.ReadFull(src, buffer)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", err
	}
	mimeType := mimetype.Detect(buffer[:n])

	mimeTypeAllowed := false
	for _, allowedType := range config.AllowedMimeTypes {
		if mimeType.Is(allowedType) {
			mimeTypeAllowed = true
			break
		}
	}
	if !mimeTypeAllowed {
		return "", fmt.Errorf("invalid file type. Allowed types: %v", config.AllowedMimeTypes)
	}

	uploadPath := filepath.Join(u.Root, uploadType)
	if err := os.MkdirAll(uploadPath, os.ModePerm); err != nil {
		return "", err
	}

	filename := UniqueFilename(fileHeader.Filename, time.Now())
	if err := c.SaveUploadedFile(fileHeader, filepath.Join(uploadPath, filename)); err != nil {
		return "", err
	}

	return path.Join(PublicUploadPrefix, uploadType, filename), nil
}

// UniqueFilename builds <base>-<unix millis>-<random>.<ext> from the client
// supplied name.
func UniqueFilename(original string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(original))
	base := Slugify(strings.TrimSuffix(filepath.Base(original), filepath.Ext(original)))
	if len(base) > 40 {
		base = strings.Trim(base[:40], "-")
	}
	if base == "" {
		base = "file"
	}
	return fmt.Sprintf("%s-%d-%06d%s", base, now.UnixMilli(), rand.Intn(1_000_000), ext)
}

// DeleteFile removes a file previously returned by UploadFile. Paths outside
// the upload root and external URLs are ignored.
func (u *Uploader) DeleteFile(publicPath string) error {
	if !strings.HasPrefix(publicPath, PublicUploadPrefix+"/") {
		return nil
	}

	rel := filepath.Clean(filepath.FromSlash(strings.TrimPrefix(publicPath, PublicUploadPrefix+"/")))
	if rel == "." || strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
		return nil
	}

	err := os.Remove(filepath.Join(u.Root, rel))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// UploadIfPresent uploads the multipart file named field. It reports false
// when the request carries no such file.
func (u *Uploader) UploadIfPresent(c *gin.Context, field, uploadType string) (string, bool, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return "", false, nil
	}

	publicPath, err := u.UploadFile(c, fileHeader, uploadType)
	if err != nil {
		return "", false, err
	}
	return publicPath, true, nil
}

// UploadMany uploads every file sent under field. Files already written are
// removed again when a later one fails.
func (u *Uploader) UploadMany(c *gin.Context, field, uploadType string) ([]string, error) {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil, nil
	}

	var paths []string
	for _, fileHeader := range form.File[field] {
		publicPath, err := u.UploadFile(c, fileHeader, uploadType)
		if err != nil {
			for _, p := range paths {
				_ = u.DeleteFile(p)
			}
			return nil, err
		}
		paths = append(paths, publicPath)
	}
	return paths, nil
}
