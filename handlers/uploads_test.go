package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartUploadContext(t *testing.T, filename string) (*gin.Context, *multipart.FileHeader) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c.Request = req

	fh, err := c.FormFile("image")
	require.NoError(t, err)
	return c, fh
}

func TestSaveTempUploadUsesUniquePaths(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c1, fh1 := multipartUploadContext(t, "photo.png")
	first, err := saveTempUpload(c1, fh1)
	require.NoError(t, err)
	defer os.Remove(first)

	c2, fh2 := multipartUploadContext(t, "photo.png")
	second, err := saveTempUpload(c2, fh2)
	require.NoError(t, err)
	defer os.Remove(second)

	// Two uploads of the same filename land in separate files, and neither
	// sits at the client-chosen name.
	assert.NotEqual(t, first, second)
	assert.NotEqual(t, filepath.Join(os.TempDir(), "photo.png"), first)
	assert.Equal(t, ".png", filepath.Ext(first))

	data, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Equal(t, "fake image bytes", string(data))
}
