package storage

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fileHeader builds a real *multipart.FileHeader the way the HTTP
// stack would hand it to us.
func fileHeader(t *testing.T, field, name, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, name))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	headers := req.MultipartForm.File[field]
	require.Len(t, headers, 1)
	return headers[0]
}

func TestLocalStoreSaveImage(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocalStore(root)
	require.NoError(t, err)

	content := []byte("fake png bytes")
	path, err := store.Save(FieldImages, fileHeader(t, FieldImages, "foto.png", "image/png", content))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(path, "/uploads/images/"), "got %q", path)
	name := filepath.Base(path)
	assert.True(t, strings.HasPrefix(name, FieldImages+"-"), "got %q", name)
	assert.True(t, strings.HasSuffix(name, ".png"), "got %q", name)

	written, err := os.ReadFile(filepath.Join(root, "images", name))
	require.NoError(t, err)
	assert.Equal(t, content, written)
}

func TestLocalStoreSaveVideo(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	path, err := store.Save(FieldVideo, fileHeader(t, FieldVideo, "demo.mp4", "video/mp4", []byte("mp4")))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, "/uploads/videos/"), "got %q", path)
}

func TestLocalStoreUniqueNames(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	fh := fileHeader(t, FieldImages, "foto.png", "image/png", []byte("x"))
	first, err := store.Save(FieldImages, fh)
	require.NoError(t, err)
	second, err := store.Save(FieldImages, fh)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestLocalStoreRejectsDisallowedTypes(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocalStore(root)
	require.NoError(t, err)

	// Wrong type for the field
	_, err = store.Save(FieldImages, fileHeader(t, FieldImages, "a.txt", "text/plain", []byte("x")))
	assert.ErrorIs(t, err, ErrUnsupportedMedia)

	// A video mime on the image field is still rejected
	_, err = store.Save(FieldImages, fileHeader(t, FieldImages, "a.mp4", "video/mp4", []byte("x")))
	assert.ErrorIs(t, err, ErrUnsupportedMedia)

	// Unknown field name
	_, err = store.Save("attachment", fileHeader(t, "attachment", "a.png", "image/png", []byte("x")))
	assert.ErrorIs(t, err, ErrUnsupportedMedia)

	// Nothing was written for any of the rejected uploads
	for _, sub := range []string{"images", "videos"} {
		entries, err := os.ReadDir(filepath.Join(root, sub))
		require.NoError(t, err)
		assert.Empty(t, entries)
	}
}

func TestCheckUploadSizeCap(t *testing.T) {
	fh := fileHeader(t, FieldImages, "big.png", "image/png", []byte("x"))
	fh.Size = MaxFileSize + 1

	err := CheckUpload(FieldImages, fh)
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestMaxRequestBodyFitsWorstLegalDraft(t *testing.T) {
	// A draft may carry MaxImageFiles images plus one video, each at
	// the per-file cap; the body limit must not reject it.
	assert.GreaterOrEqual(t, MaxRequestBody, (MaxImageFiles+1)*MaxFileSize)
}
