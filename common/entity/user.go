package entity

import "time"

// User 用户实体
type User struct {
	ID           int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name         string    `gorm:"column:name;type:varchar(255);not null"`
	Email        string    `gorm:"column:email;type:varchar(255);uniqueIndex:uk_email;not null"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(255);not null"`
	Role         string    `gorm:"column:role;type:varchar(16);not null;default:'cliente'"`
	Department   string    `gorm:"column:department;type:varchar(64)"`
	CreatedAt    time.Time `gorm:"column:created_at;not null"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// 用户角色常量
const (
	UserRoleAdmin   = "admin"
	UserRoleCliente = "cliente"
)
