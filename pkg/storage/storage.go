package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"
)

// DefaultBucket holds uploaded medical reports.
const DefaultBucket = "medical-reports"

var ErrObjectNotFound = errors.New("object not found")

// BlobStore keeps uploaded report files.
type BlobStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
}

// ObjectKey builds "<user_id>/<unix_millis>-<file_name>". Only the base name of
// fileName is kept so a crafted name cannot climb out of the user's prefix.
func ObjectKey(userID, fileName string, at time.Time) string {
	name := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	if name == "." || name == "/" || name == ".." {
		name = "upload"
	}
	return fmt.Sprintf("%s/%d-%s", userID, at.UnixMilli(), name)
}
