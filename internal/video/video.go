package video

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNoFile   = errors.New("no video file provided")
	ErrNotVideo = errors.New("file is not a video")
	ErrTooLarge = errors.New("video exceeds the upload limit")
)

type Upload struct {
	ID       string
	Title    string
	FileName string
	Path     string
	Size     int64
}

// DisplayName is the title if one was given, else the original file name.
func (u Upload) DisplayName() string {
	if u.Title != "" {
		return u.Title
	}
	return u.FileName
}

// Store writes uploaded walkthrough videos to a directory.
type Store struct {
	dir string
	max int64
}

func NewStore(dir string, maxBytes int64) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("video store: %w", err)
	}
	return &Store{dir: dir, max: maxBytes}, nil
}

func (s *Store) MaxBytes() int64 { return s.max }

// Save copies r to a fresh uuid-named file, keeping the original extension.
func (s *Store) Save(title, fileName, contentType string, r io.Reader) (Upload, error) {
	if fileName == "" {
		return Upload{}, ErrNoFile
	}
	if !strings.HasPrefix(contentType, "video/") {
		return Upload{}, fmt.Errorf("%w: %s", ErrNotVideo, contentType)
	}

	id := uuid.New().String()
	ext := strings.ToLower(filepath.Ext(fileName))
	path := filepath.Join(s.dir, id+ext)

	f, err := os.Create(path)
	if err != nil {
		return Upload{}, err
	}
	n, err := io.Copy(f, io.LimitReader(r, s.max+1))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && n > s.max {
		err = ErrTooLarge
	}
	if err != nil {
		os.Remove(path)
		return Upload{}, err
	}

	return Upload{
		ID:       id,
		Title:    strings.TrimSpace(title),
		FileName: filepath.Base(fileName),
		Path:     path,
		Size:     n,
	}, nil
}
