package helpers

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{
	0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n',
	0x00, 0x00, 0x00, 0x0d, 'I', 'H', 'D', 'R',
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x02, 0x00, 0x00, 0x00, 0x90, 0x77, 0x53, 0xde,
}

func multipartContext(t *testing.T, field, filename string, content []byte) *gin.Context {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("POST", "/upload", body)
	c.Request.Header.Set("Content-Type", writer.FormDataContentType())
	return c
}

func TestUploadFile(t *testing.T) {
	root := t.TempDir()
	uploader := NewUploader(root)

	c := multipartContext(t, "image", "Grand Finals.png", pngHeader)
	fileHeader, err := c.FormFile("image")
	require.NoError(t, err)

	publicPath, err := uploader.UploadFile(c, fileHeader, UploadEvents)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(publicPath, "/uploads/events/grand-finals-"), publicPath)
	assert.True(t, strings.HasSuffix(publicPath, ".png"), publicPath)

	stored := filepath.Join(root, "events", filepath.Base(publicPath))
	content, err := os.ReadFile(stored)
	require.NoError(t, err)
	assert.Equal(t, pngHeader, content)

	require.NoError(t, uploader.DeleteFile(publicPath))
	_, err = os.Stat(stored)
	assert.True(t, os.IsNotExist(err))
}

func TestUploadFileRejectsWrongType(t *testing.T) {
	uploader := NewUploader(t.TempDir())

	c := multipartContext(t, "image", "notes.png", []byte("just some text, not an image"))
	fileHeader, err := c.FormFile("image")
	require.NoError(t, err)

	_, err = uploader.UploadFile(c, fileHeader, UploadEvents)
	assert.Error(t, err)

	_, err = uploader.UploadFile(c, fileHeader, "secrets")
	assert.ErrorIs(t, err, ErrUnknownUploadType)
}

func TestUploadIfPresent(t *testing.T) {
	uploader := NewUploader(t.TempDir())

	c := multipartContext(t, "logo", "logo.png", pngHeader)
	publicPath, uploaded, err := uploader.UploadIfPresent(c, "logo", UploadTeams)
	require.NoError(t, err)
	assert.True(t, uploaded)
	assert.True(t, strings.HasPrefix(publicPath, "/uploads/teams/logo-"))

	_, uploaded, err = uploader.UploadIfPresent(c, "photo", UploadMembers)
	require.NoError(t, err)
	assert.False(t, uploaded)
}

func TestDeleteFileIgnoresForeignPaths(t *testing.T) {
	root := t.TempDir()
	outside := filepath.Join(filepath.Dir(root), "keep.txt")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o644))
	t.Cleanup(func() { os.Remove(outside) })

	uploader := NewUploader(root)
	assert.NoError(t, uploader.DeleteFile("https://cdn.example.com/a.png"))
	assert.NoError(t, uploader.DeleteFile("/uploads/../keep.txt"))
	assert.NoError(t, uploader.DeleteFile("/uploads/events/missing.png"))

	_, err := os.Stat(outside)
	assert.NoError(t, err)
}

func TestUniqueFilename(t *testing.T) {
	now := time.UnixMilli(1718000000000)
	name := UniqueFilename("My Banner.PNG", now)
	assert.Regexp(t, regexp.MustCompile(`^my-banner-1718000000000-\d{6}\.png$`), name)

	assert.Regexp(t, `^file-1718000000000-\d{6}\.jpg$`, UniqueFilename("***.jpg", now))

	long := UniqueFilename(strings.Repeat("a", 80)+".webp", now)
	assert.Regexp(t, `^a{40}-1718000000000-\d{6}\.webp$`, long)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		seen[UniqueFilename("same.png", now)] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestIsUploadType(t *testing.T) {
	for _, dir := range []string{UploadEvents, UploadMembers, UploadTeams, UploadGames, UploadNews,
		UploadPartners, UploadProducts, UploadVideos, UploadThumbnails} {
		assert.True(t, IsUploadType(dir), dir)
	}
	assert.False(t, IsUploadType("../etc"))
}
