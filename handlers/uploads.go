package handlers

import (
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// saveTempUpload buffers a multipart upload into a uniquely named temp file
// and returns its path. The client-supplied filename only contributes its
// extension, so concurrent uploads of the same name cannot collide. The
// caller removes the file when done.
func saveTempUpload(c *gin.Context, fileHeader *multipart.FileHeader) (string, error) {
	tmp, err := os.CreateTemp("", "gearbook-upload-*"+filepath.Ext(fileHeader.Filename))
	if err != nil {
		return "", err
	}
	tmp.Close()

	if err := c.SaveUploadedFile(fileHeader, tmp.Name()); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}
