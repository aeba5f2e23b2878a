package mdreceipt

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"tourshop/internal/app/domains/entity/etorder"
	"tourshop/internal/app/infra/storage"
	"tourshop/internal/app/pkg/errorx"
)

// 允许上传的凭证扩展名
var allowedExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".webp": {},
	".pdf":  {},
}

// DefaultMaxBytes 未配置上限时使用的凭证大小上限
const DefaultMaxBytes = 5 << 20

// ReceiptModule 付款凭证模块
// 负责文件校验、对象命名与公开 URL 生成，底层存储由 BlobStore 决定
type ReceiptModule struct {
	store    storage.BlobStore
	baseURL  string
	maxBytes int64
	now      func() time.Time
}

// NewReceiptModule 创建凭证模块，maxBytes <= 0 时取 DefaultMaxBytes
func NewReceiptModule(store storage.BlobStore, publicBaseURL string, maxBytes int64) *ReceiptModule {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &ReceiptModule{
		store:    store,
		baseURL:  strings.TrimRight(publicBaseURL, "/"),
		maxBytes: maxBytes,
		now:      time.Now,
	}
}

// Validate 校验凭证文件：非空、大小上限、扩展名白名单
func (m *ReceiptModule) Validate(blob []byte, filename string) error {
	if len(blob) == 0 {
		return errorx.ErrInvalidReceipt.WithMessage("receipt file is empty")
	}
	if int64(len(blob)) > m.maxBytes {
		return errorx.ErrInvalidReceipt.WithMessage("receipt file exceeds %d bytes", m.maxBytes)
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return errorx.ErrInvalidReceipt.WithMessage("file type %q is not allowed", ext)
	}
	return nil
}

// Store 保存凭证文件，返回待合并到订单 details 的凭证引用
// 对象名：order-<id>-<unixmillis><ext>
func (m *ReceiptModule) Store(ctx context.Context, orderID int64, blob []byte, originalName string) (*etorder.Receipt, error) {
	if err := m.Validate(blob, originalName); err != nil {
		return nil, err
	}

	now := m.now()
	ext := strings.ToLower(filepath.Ext(originalName))
	name := fmt.Sprintf("order-%d-%d%s", orderID, now.UnixMilli(), ext)

	if err := m.store.Put(ctx, name, bytes.NewReader(blob), int64(len(blob))); err != nil {
		return nil, errorx.ErrStorageFailure.Wrap(err)
	}

	uploadedAt := now.UTC()
	return &etorder.Receipt{
		Name:       filepath.Base(originalName),
		URL:        m.URL(name),
		StoredAs:   name,
		UploadedAt: &uploadedAt,
	}, nil
}

// URL 对象的公开访问地址
func (m *ReceiptModule) URL(name string) string {
	return m.baseURL + "/api/v1/receipts/" + name
}

// Open 读取凭证文件
func (m *ReceiptModule) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := storage.ValidateName(name); err != nil {
		return nil, errorx.ErrInvalidReceipt.WithMessage("invalid receipt name")
	}
	rc, err := m.store.Open(ctx, name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, errorx.ErrReceiptNotFound
		}
		return nil, errorx.ErrStorageFailure.Wrap(err)
	}
	return rc, nil
}

// Delete 删除凭证文件
func (m *ReceiptModule) Delete(ctx context.Context, name string) error {
	if name == "" {
		return nil
	}
	return m.store.Delete(ctx, name)
}
