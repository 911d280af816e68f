package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/ItsRyS/pms-server/internal/pkg/logger"
)

// LocalStorage stores artifacts on the local filesystem, one
// subdirectory per category.
type LocalStorage struct {
	basePath string // root directory for stored files
	baseURL  string // prepended to keys to form retrievable URLs
}

// NewLocalStorage creates a LocalStorage rooted at basePath.
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

// Save stores an uploaded file under category/{unix-ms}_{sanitized-name}.
func (ls *LocalStorage) Save(fileHeader *multipart.FileHeader, category string) (*StoredFile, error) {
	if fileHeader == nil {
		return nil, fmt.Errorf("no file provided")
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	dirPath := filepath.Join(ls.basePath, category)
	if err := os.MkdirAll(dirPath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", dirPath).Msg("Failed to create category directory")
		return nil, fmt.Errorf("failed to create category directory: %w", err)
	}

	uniqueName := UniqueFilename(fileHeader.Filename)
	dstPath := filepath.Join(dirPath, uniqueName)

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return nil, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(dstPath)
		return nil, fmt.Errorf("failed to save file content: %w", err)
	}

	key := category + "/" + uniqueName
	stored := &StoredFile{Key: key, URL: ls.baseURL + "/" + key}

	logger.Info().Str("filename", fileHeader.Filename).Str("key", key).Msg("File saved")
	return stored, nil
}

// Delete removes the artifact a stored URL points at. Missing files are
// treated as already deleted so the operation is idempotent.
func (ls *LocalStorage) Delete(fileURL, category string) error {
	if fileURL == "" {
		return nil
	}

	filename := filepath.Base(fileURL)
	if filename == "" || filename == "." || filename == "/" {
		return fmt.Errorf("invalid file URL: %s", fileURL)
	}

	physicalPath := filepath.Join(ls.basePath, category, filename)

	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
		return nil
	}

	if err := os.Remove(physicalPath); err != nil {
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", physicalPath).Msg("File deleted")
	return nil
}

// UniqueFilename builds a collision-resistant filename from an upload:
// millisecond timestamp plus the sanitized original name.
func UniqueFilename(original string) string {
	ext := filepath.Ext(original)
	base := SanitizeFilename(strings.TrimSuffix(original, ext))
	return strconv.FormatInt(time.Now().UnixMilli(), 10) + "_" + base + ext
}

// SanitizeFilename strips combining marks and replaces anything that is
// not a letter, digit, dot, underscore or hyphen with an underscore.
// Thai characters survive since the catalog and uploads are bilingual.
func SanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range norm.NFC.String(name) {
		switch {
		case unicode.Is(unicode.Mn, r):
			// drop combining marks
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	cleaned := b.String()
	for strings.Contains(cleaned, "__") {
		cleaned = strings.ReplaceAll(cleaned, "__", "_")
	}
	cleaned = strings.Trim(cleaned, "_")
	if cleaned == "" {
		return "file"
	}
	return cleaned
}
