package media

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/atharvajoshi-21/MERN-Miniproject-1/model"
	"github.com/atharvajoshi-21/MERN-Miniproject-1/util"
)

// MaxAvatarSize limits uploads to 2 Megabytes
const MaxAvatarSize = 2 * 1024 * 1024

var (
	// ErrNotImage is returned for uploads outside the image allow-list.
	ErrNotImage = errors.New("only images allowed")
	// ErrTooLarge is returned for uploads over MaxAvatarSize.
	ErrTooLarge = errors.New("file too large")
)

// Store writes avatar files to a fixed upload directory. There is no
// transactional tie between the disk write and the user record update.
type Store struct {
	dir string
}

// NewStore creates a Store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Save validates an uploaded file and writes it under a randomized name,
// returning the stored filename.
func (s *Store) Save(file *multipart.FileHeader) (string, error) {
	if !util.ContainsImage(file.Header["Content-Type"]) {
		return "", ErrNotImage
	}

	if file.Size > MaxAvatarSize {
		return "", ErrTooLarge
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	name, err := RandomFilename(filepath.Ext(file.Filename))
	if err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return name, nil
}

// Remove deletes a previously stored avatar. The default placeholder is
// never deleted, and a file already gone is not an error.
func (s *Store) Remove(name string) error {
	if name == "" || name == model.DefaultAvatar {
		return nil
	}

	err := os.Remove(filepath.Join(s.dir, filepath.Base(name)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove file: %w", err)
	}

	return nil
}

// RandomFilename builds a collision-resistant filename from random bytes, a
// timestamp and the original extension.
func RandomFilename(ext string) (string, error) {
	raw := make([]byte, 16)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	ts := strconv.FormatInt(time.Now().UnixMilli(), 10)
	return hex.EncodeToString(raw) + ts + strings.ToLower(ext), nil
}
