package rpuser

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"tourshop/common/entity"
	"tourshop/internal/app/domains/entity/etprimitive"
	"tourshop/internal/app/domains/entity/etuser"
)

// UserRepositoryImpl 用户仓储实现（GORM）
type UserRepositoryImpl struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储实例
func NewUserRepository(db *gorm.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create 创建用户
func (r *UserRepositoryImpl) Create(ctx context.Context, user *etuser.User) error {
	po := &entity.User{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Role:         string(user.Role),
		Department:   user.Department,
		CreatedAt:    user.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(po).Error; err != nil {
		return err
	}
	// 将数据库生成的ID回写到领域对象
	user.ID = po.ID
	return nil
}

// GetByID 根据ID查询用户
func (r *UserRepositoryImpl) GetByID(ctx context.Context, userID int64) (*etuser.User, error) {
	return r.getOne(ctx, "id = ?", userID)
}

// GetByEmail 根据邮箱查询用户（登录使用）
func (r *UserRepositoryImpl) GetByEmail(ctx context.Context, email string) (*etuser.User, error) {
	return r.getOne(ctx, "email = ?", email)
}

// Exists 检查用户是否存在
func (r *UserRepositoryImpl) Exists(ctx context.Context, userID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", userID).Count(&count).Error
	return count > 0, err
}

func (r *UserRepositoryImpl) getOne(ctx context.Context, query string, arg interface{}) (*etuser.User, error) {
	var po entity.User
	if err := r.db.WithContext(ctx).Where(query, arg).First(&po).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &etuser.User{
		ID:           po.ID,
		Name:         po.Name,
		Email:        po.Email,
		Role:         etprimitive.Role(po.Role),
		Department:   po.Department,
		PasswordHash: po.PasswordHash,
		CreatedAt:    po.CreatedAt,
	}, nil
}
