package etprimitive

import (
	"strconv"
	"strings"
)

// Role 操作者角色
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleCliente Role = "cliente"
)

// Actor 操作者身份，由调用方显式传入每个业务操作
type Actor struct {
	UserID int64
	Role   Role
}

// IsAdmin 是否为管理员
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanSee 是否可以查看指定用户的数据
func (a Actor) CanSee(ownerUserID int64) bool {
	return a.IsAdmin() || a.UserID == ownerUserID
}

// OrderRef 订单引用：按数字 ID 或订单号二选一
type OrderRef struct {
	ID     int64
	Number string
}

// ByID 按数字 ID 引用订单
func ByID(id int64) OrderRef {
	return OrderRef{ID: id}
}

// ByNumber 按订单号引用订单
func ByNumber(number string) OrderRef {
	return OrderRef{Number: number}
}

// ParseOrderRef 解析路径参数：纯数字视为 ID，否则视为订单号
func ParseOrderRef(raw string) (OrderRef, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return OrderRef{}, false
	}
	if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
		if id <= 0 {
			return OrderRef{}, false
		}
		return ByID(id), true
	}
	return ByNumber(raw), true
}

// IsByID 是否按 ID 引用
func (r OrderRef) IsByID() bool {
	return r.Number == ""
}

// String 用于日志
func (r OrderRef) String() string {
	if r.IsByID() {
		return "id:" + strconv.FormatInt(r.ID, 10)
	}
	return "number:" + r.Number
}

// Pagination 分页参数
type Pagination struct {
	Page  int
	Limit int
	Total int64
}

// Normalize 填充默认分页
func (p *Pagination) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
}

// Offset 计算偏移
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}
