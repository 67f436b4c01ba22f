package object

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
)

// ErrNotFound is returned when a storage key has no object.
var ErrNotFound = errors.New("object not found")

// Object describes a stored blob.
type Object struct {
	Key         string
	Size        int64
	ContentType string
}

// Store saves and retrieves binary objects namespaced by owner.
type Store interface {
	Put(ctx context.Context, ownerID, fileName, contentType string, r io.Reader) (Object, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// Sniff reads up to 512 bytes from r to detect a content type when none was given. The
// returned reader replays the sniffed bytes.
func Sniff(contentType string, r io.Reader) (string, io.Reader, error) {
	if contentType != "" {
		return contentType, r, nil
	}
	var buf [512]byte
	n, err := io.ReadFull(r, buf[:])
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", nil, err
	}
	head := append([]byte(nil), buf[:n]...)
	return http.DetectContentType(head), io.MultiReader(bytes.NewReader(head), r), nil
}
