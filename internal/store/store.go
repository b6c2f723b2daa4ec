package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/thatsimonsguy/reflow-controller/internal/nvstorage"
)

// Image is an nvstorage.Storage kept as a raw EEPROM image file. A missing
// file reads as all zeros.
type Image struct {
	mu   sync.Mutex
	path string
	size int
}

func New(path string, size int) *Image {
	return &Image{path: path, size: size}
}

func (s *Image) Read(offset, length int) ([]byte, error) {
	if err := nvstorage.CheckBounds(offset, length, s.size); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	image, err := s.load()
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), image[offset:offset+length]...), nil
}

func (s *Image) Write(offset int, data []byte) error {
	if err := nvstorage.CheckBounds(offset, len(data), s.size); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	image, err := s.load()
	if err != nil {
		return err
	}
	copy(image[offset:], data)
	return s.save(image)
}

func (s *Image) load() ([]byte, error) {
	image := make([]byte, s.size)

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return image, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read image %s: %w", s.path, err)
	}
	copy(image, data)
	return image, nil
}

func (s *Image) save(image []byte) error {
	tmpPath := s.path + ".tmp"

	file, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create image %s: %w", tmpPath, err)
	}
	if _, err := file.Write(image); err != nil {
		file.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write image %s: %w", tmpPath, err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("sync image %s: %w", tmpPath, err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close image %s: %w", tmpPath, err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace image %s: %w", s.path, err)
	}
	return nil
}
