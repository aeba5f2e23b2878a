package mduser

import (
	"context"

	"tourshop/internal/app/domains/entity/etuser"
	"tourshop/internal/app/domains/repo/rpuser"
)

// UserModule 用户模块
type UserModule struct {
	userRepo rpuser.UserRepository
}

// NewUserModule 创建用户模块
func NewUserModule(userRepo rpuser.UserRepository) *UserModule {
	return &UserModule{
		userRepo: userRepo,
	}
}

// CreateUser 创建用户（数据操作）
func (m *UserModule) CreateUser(ctx context.Context, user *etuser.User) error {
	return m.userRepo.Create(ctx, user)
}

// GetUser 查询用户
func (m *UserModule) GetUser(ctx context.Context, userID int64) (*etuser.User, error) {
	return m.userRepo.GetByID(ctx, userID)
}

// GetUserByEmail 根据邮箱查询用户（登录、检查重复）
func (m *UserModule) GetUserByEmail(ctx context.Context, email string) (*etuser.User, error) {
	return m.userRepo.GetByEmail(ctx, email)
}
