package attachments

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// DiskSink writes attachments under <dir>/<owner>/ and links them below baseURL.
// The files are served statically, so it has no Source.
type DiskSink struct {
	dir     string
	baseURL string
}

var _ Sink = (*DiskSink)(nil)

// NewDiskSink creates a DiskSink rooted at dir.
func NewDiskSink(dir, baseURL string) *DiskSink {
	return &DiskSink{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

// Put copies obj.Body to a new file. A partial file is removed on failure.
func (d *DiskSink) Put(ctx context.Context, obj Object) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	owner := segment(obj.OwnerID)
	name := bson.NewObjectID().Hex() + "-" + segment(filepath.Base(obj.Name))

	ownerDir := filepath.Join(d.dir, owner)
	if err := os.MkdirAll(ownerDir, 0o750); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	path := filepath.Join(ownerDir, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	_, copyErr := io.Copy(f, obj.Body)
	closeErr := f.Close()
	if err := errors.Join(copyErr, closeErr); err != nil {
		_ = os.Remove(path)
		if errors.Is(copyErr, ErrTooLarge) {
			return "", ErrTooLarge
		}
		return "", fmt.Errorf("write upload file: %w", err)
	}

	return d.baseURL + "/" + owner + "/" + name, nil
}

// segment makes s safe as a single path element.
func segment(s string) string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, s)
	if strings.Trim(clean, ".") == "" {
		return "_"
	}
	return clean
}
