package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ErrNotFound 对象不存在
var ErrNotFound = errors.New("object not found")

// BlobStore 凭证文件存储
type BlobStore interface {
	// Put 写入对象，同名对象会被覆盖
	Put(ctx context.Context, name string, r io.Reader, size int64) error

	// Open 读取对象，不存在时返回 ErrNotFound
	Open(ctx context.Context, name string) (io.ReadCloser, error)

	// Delete 删除对象，不存在时不报错
	Delete(ctx context.Context, name string) error
}

// ValidateName 对象名只能是单层文件名，拒绝路径穿越
func ValidateName(name string) error {
	if name == "" || name == "." || name == ".." {
		return fmt.Errorf("invalid object name %q", name)
	}
	if strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return fmt.Errorf("invalid object name %q", name)
	}
	return nil
}
