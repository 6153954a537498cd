package services

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// StorageService hands out scratch files for converters that need a path on
// disk. Uploads themselves are never kept.
type StorageService interface {
	// WriteTemp stores data under a unique name that keeps fileName's
	// extension. cleanup removes the file and is safe to call more than once.
	WriteTemp(fileName string, data []byte) (path string, cleanup func(), err error)
	EnsureTempDir() error
}

type storageService struct {
	tempPath string
}

func NewStorageService(tempPath string) StorageService {
	return &storageService{
		tempPath: tempPath,
	}
}

func (s *storageService) EnsureTempDir() error {
	if err := os.MkdirAll(s.tempPath, 0o755); err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}

	return nil
}

func (s *storageService) WriteTemp(fileName string, data []byte) (string, func(), error) {
	ext := strings.ToLower(filepath.Ext(fileName))

	uniqueFilename := fmt.Sprintf("resume_%s%s", uuid.New().String(), ext)
	filePath := filepath.Join(s.tempPath, uniqueFilename)

	dst, err := os.OpenFile(filePath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp file: %w", err)
	}

	removed := false
	cleanup := func() {
		if removed {
			return
		}
		removed = true
		if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
			log.Printf("⚠️  Failed to delete temp file %s: %v", filePath, err)
		}
	}

	if _, err := io.Copy(dst, bytes.NewReader(data)); err != nil {
		dst.Close()
		cleanup()
		return "", nil, fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := dst.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("failed to close temp file: %w", err)
	}

	return filePath, cleanup, nil
}
