package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/yigit/cems/internal/pkg/apperrors"
	"github.com/yigit/cems/internal/pkg/logger"
)

// MaxImageSize caps a single upload
const MaxImageSize = 5 << 20

var allowedImageExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// LocalStorage saves images on the local filesystem and serves them from baseURL.
type LocalStorage struct {
	basePath string
	baseURL  string
}

// NewLocalStorage creates the base directory if needed.
// baseURL is the public prefix the directory is served under.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

// CheckImage rejects uploads that are empty, too large or not an image type
func CheckImage(fileHeader *multipart.FileHeader) error {
	if fileHeader == nil || fileHeader.Size == 0 {
		return apperrors.NewValidationError("image", "image file is required")
	}
	if fileHeader.Size > MaxImageSize {
		return apperrors.NewValidationError("image", "image must be 5MB or smaller")
	}
	if !allowedImageExt[strings.ToLower(filepath.Ext(fileHeader.Filename))] {
		return apperrors.NewValidationError("image", "image must be a jpg, png, gif or webp file")
	}
	return nil
}

// SaveImage stores the upload under a fresh name and returns its URL
func (ls *LocalStorage) SaveImage(fileHeader *multipart.FileHeader, subPath string) (string, error) {
	if err := CheckImage(fileHeader); err != nil {
		return "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	dir := filepath.Join(ls.basePath, filepath.FromSlash(subPath))
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", dir).Msg("Failed to create subdirectory")
		return "", fmt.Errorf("failed to create subdirectory: %w", err)
	}

	name := uuid.New().String() + strings.ToLower(filepath.Ext(fileHeader.Filename))
	dstPath := filepath.Join(dir, name)

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	url := ls.baseURL + "/" + path.Join(subPath, name)
	logger.Info().Str("filename", fileHeader.Filename).Str("url", url).Msg("Image saved")
	return url, nil
}

// localPath maps a URL issued by SaveImage back to a path under basePath
func (ls *LocalStorage) localPath(fileURL string) (string, bool) {
	rel, ok := strings.CutPrefix(fileURL, ls.baseURL+"/")
	if !ok || rel == "" {
		return "", false
	}
	cleaned := path.Clean("/" + rel)[1:]
	if cleaned == "" || strings.HasPrefix(cleaned, "..") {
		return "", false
	}
	return filepath.Join(ls.basePath, filepath.FromSlash(cleaned)), true
}

// DeleteImage removes a stored image. Missing files and foreign URLs are not errors.
func (ls *LocalStorage) DeleteImage(fileURL string) error {
	physicalPath, ok := ls.localPath(fileURL)
	if !ok {
		return nil
	}

	if err := os.Remove(physicalPath); err != nil {
		if os.IsNotExist(err) {
			logger.Warn().Str("path", physicalPath).Msg("Image to delete does not exist")
			return nil
		}
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete image")
		return fmt.Errorf("failed to delete image: %w", err)
	}

	logger.Info().Str("path", physicalPath).Msg("Image deleted")
	return nil
}
