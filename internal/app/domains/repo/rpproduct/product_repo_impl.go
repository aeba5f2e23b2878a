package rpproduct

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tourshop/common/entity"
	"tourshop/internal/app/domains/entity/etorder"
	"tourshop/internal/app/domains/entity/etproduct"
)

// ProductRepositoryImpl 商品仓储实现（GORM）
type ProductRepositoryImpl struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓储实例
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &ProductRepositoryImpl{db: db}
}

// GetByCode 根据商品编码查询
func (r *ProductRepositoryImpl) GetByCode(ctx context.Context, code string) (*etproduct.Product, error) {
	var po entity.Product
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&po).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &etproduct.Product{
		ID:          po.ID,
		Code:        po.Code,
		Description: po.Description,
		Category:    etorder.Category(po.Category),
		Price:       po.Price,
		Active:      po.Active,
	}, nil
}

// Upsert 按编码写入商品，已存在时更新描述、类目、价格与上架状态
func (r *ProductRepositoryImpl) Upsert(ctx context.Context, product *etproduct.Product) error {
	po := &entity.Product{
		Code:        product.Code,
		Description: product.Description,
		Category:    string(product.Category),
		Price:       product.Price,
		Active:      product.Active,
		CreatedAt:   time.Now(),
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{"description", "category", "price", "active"}),
	}).Create(po).Error
	if err != nil {
		return err
	}
	product.ID = po.ID
	return nil
}
