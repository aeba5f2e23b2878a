package etuser

import (
	"errors"
	"time"

	"tourshop/internal/app/domains/entity/etprimitive"
)

// 错误定义
var (
	ErrInvalidUserID = errors.New("invalid user ID")
	ErrInvalidName   = errors.New("user name cannot be empty")
	ErrInvalidEmail  = errors.New("invalid email format")
	ErrInvalidRole   = errors.New("role must be admin or cliente")
)

// User 用户实体（订单核心只读）
type User struct {
	ID           int64            // 用户ID
	Name         string           // 姓名
	Email        string           // 邮箱
	Role         etprimitive.Role // 角色
	Department   string           // 部门
	PasswordHash string           // bcrypt 哈希
	CreatedAt    time.Time        // 创建时间
}

// NewUser 创建用户（工厂方法）
// id: 为0表示新用户（ID由数据库生成）
func NewUser(id int64, name, email string, role etprimitive.Role) (*User, error) {
	// 业务规则校验
	if id < 0 {
		return nil, ErrInvalidUserID
	}
	if name == "" {
		return nil, ErrInvalidName
	}
	if email == "" {
		return nil, ErrInvalidEmail
	}
	if role != etprimitive.RoleAdmin && role != etprimitive.RoleCliente {
		return nil, ErrInvalidRole
	}

	return &User{
		ID:        id,
		Name:      name,
		Email:     email,
		Role:      role,
		CreatedAt: time.Now(),
	}, nil
}

// Actor 转换为操作者身份
func (u *User) Actor() etprimitive.Actor {
	return etprimitive.Actor{UserID: u.ID, Role: u.Role}
}
