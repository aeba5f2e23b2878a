package rpproduct

import (
	"context"
	"errors"

	"tourshop/internal/app/domains/entity/etproduct"
)

// ErrNotFound 商品不存在
var ErrNotFound = errors.New("product not found")

// ProductRepository 目录商品仓储接口
type ProductRepository interface {
	// GetByCode 根据商品编码查询
	GetByCode(ctx context.Context, code string) (*etproduct.Product, error)

	// Upsert 按编码写入商品（初始化数据使用）
	Upsert(ctx context.Context, product *etproduct.Product) error
}
