package middleware

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Size caps mirror what the storefront accepts: product and customization
// images up to 5 MB, review photos up to 2 MB.
const (
	MaxImageSize       = 5 << 20
	MaxReviewImageSize = 2 << 20
)

var allowedImageExtensions = []string{".jpg", ".jpeg", ".png", ".webp"}

func isValidImageExtension(file *multipart.FileHeader) bool {
	fileExt := strings.ToLower(filepath.Ext(file.Filename))
	for _, allowExt := range allowedImageExtensions {
		if fileExt == allowExt {
			return true
		}
	}
	return false
}

func uniqueFileName(prefix string, file *multipart.FileHeader) string {
	return fmt.Sprintf("%s-%d%s", prefix, time.Now().UnixNano(), strings.ToLower(filepath.Ext(file.Filename)))
}

func uploadsDir() string {
	if dir := os.Getenv("UPLOADS_DIR"); dir != "" {
		return dir
	}
	return "./uploads"
}

// SaveImage validates and stores an uploaded image under
// <uploads>/<subdir>/ and returns the public path. A missing file field is
// not an error here; callers that require an image check for "".
func SaveImage(c *gin.Context, field, subdir, prefix string, maxSize int64) (string, error) {
	file, err := c.FormFile(field)
	if err != nil {
		return "", nil
	}

	if !isValidImageExtension(file) {
		return "", fmt.Errorf("unsupported image type: %s", filepath.Ext(file.Filename))
	}
	if file.Size > maxSize {
		return "", fmt.Errorf("image exceeds the %d MB limit", maxSize>>20)
	}

	saveDir := filepath.Join(uploadsDir(), subdir)
	if err := os.MkdirAll(saveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create upload folder: %w", err)
	}

	filename := uniqueFileName(prefix, file)
	if err := c.SaveUploadedFile(file, filepath.Join(saveDir, filename)); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}

	return "/uploads/" + subdir + "/" + filename, nil
}
