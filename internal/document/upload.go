package document

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"lab-document-tracking/internal/errors"

	"github.com/gin-gonic/gin"
)

const (
	maxPDFBytes     = 1 << 20 // 1 MiB
	historisSubdir  = "historis"
	uploadURLPrefix = "/uploads/historis/"
)

// savePDF validates and stores a historis attachment. Only PDFs up to 1 MiB
// are accepted. The stored name carries a timestamp plus a random suffix and
// the file is served back under /uploads/historis/.
func savePDF(c *gin.Context, file *multipart.FileHeader, uploadDir string) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	isPDF := file.Header.Get("Content-Type") == "application/pdf" || ext == ".pdf"
	if !isPDF {
		return "", errors.BadRequest("File harus PDF", nil)
	}
	if file.Size > maxPDFBytes {
		return "", errors.BadRequest("Ukuran file maksimal 1MB", nil)
	}

	dir := filepath.Join(uploadDir, historisSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Internal(err)
	}

	if ext == "" {
		ext = ".pdf"
	}
	name := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), randomSuffix(), ext)
	if err := c.SaveUploadedFile(file, filepath.Join(dir, name)); err != nil {
		return "", errors.Internal(err)
	}

	return uploadURLPrefix + name, nil
}

func randomSuffix() string {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}
