package rpuser

import (
	"context"
	"errors"

	"tourshop/internal/app/domains/entity/etuser"
)

// ErrNotFound 用户不存在
var ErrNotFound = errors.New("user not found")

// UserRepository 用户仓储接口
type UserRepository interface {
	// Create 创建用户（初始化数据使用）
	Create(ctx context.Context, user *etuser.User) error

	// GetByID 根据ID查询用户
	GetByID(ctx context.Context, userID int64) (*etuser.User, error)

	// GetByEmail 根据邮箱查询用户
	GetByEmail(ctx context.Context, email string) (*etuser.User, error)

	// Exists 检查用户是否存在
	Exists(ctx context.Context, userID int64) (bool, error)
}
