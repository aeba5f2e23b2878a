package errorx

import (
	"errors"
	"fmt"
	"net/http"
)

// 错误类型
const (
	TypeInvalidOwner        = "InvalidOwner"
	TypeInvalidLineItem     = "InvalidLineItem"
	TypeInvalidDetails      = "InvalidDetails"
	TypeInvalidReceipt      = "InvalidReceipt"
	TypeInvalidTransition   = "InvalidTransition"
	TypeUnauthorized        = "Unauthorized"
	TypeOrderNotFound       = "OrderNotFound"
	TypeReceiptNotFound     = "ReceiptNotFound"
	TypeUserNotFound        = "UserNotFound"
	TypeStorageFailure      = "StorageFailure"
	TypeNotificationFailure = "NotificationFailure"
	TypeInvalidCredentials  = "InvalidCredentials"
)

// 业务错误定义；按 Type 比较，可配合 errors.Is 使用
var (
	ErrInvalidOwner        = NewBusinessError(http.StatusUnprocessableEntity, TypeInvalidOwner, "owner user does not exist")
	ErrInvalidLineItem     = NewBusinessError(http.StatusBadRequest, TypeInvalidLineItem, "invalid line item")
	ErrInvalidDetails      = NewBusinessError(http.StatusBadRequest, TypeInvalidDetails, "invalid order details")
	ErrInvalidReceipt      = NewBusinessError(http.StatusBadRequest, TypeInvalidReceipt, "invalid receipt file")
	ErrInvalidTransition   = NewBusinessError(http.StatusConflict, TypeInvalidTransition, "status transition not allowed")
	ErrUnauthorized        = NewBusinessError(http.StatusForbidden, TypeUnauthorized, "operation not allowed for this user")
	ErrOrderNotFound       = NewBusinessError(http.StatusNotFound, TypeOrderNotFound, "order not found")
	ErrUserNotFound        = NewBusinessError(http.StatusNotFound, TypeUserNotFound, "user not found")
	ErrReceiptNotFound     = NewBusinessError(http.StatusNotFound, TypeReceiptNotFound, "receipt not found")
	ErrStorageFailure      = NewBusinessError(http.StatusBadGateway, TypeStorageFailure, "receipt storage failed")
	ErrNotificationFailure = NewBusinessError(http.StatusInternalServerError, TypeNotificationFailure, "notification could not be queued")
	ErrInvalidCredentials  = NewBusinessError(http.StatusUnauthorized, TypeInvalidCredentials, "invalid email or password")
)

// BusinessError 业务错误结构
type BusinessError struct {
	Code    int
	Type    string
	Message string
	Details []ErrorDetail
	cause   error
}

// ErrorDetail 错误详情
type ErrorDetail struct {
	Path string
	Info string
}

// Error 实现 error 接口，包含底层错误，仅用于日志
func (e *BusinessError) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

// Unwrap 返回底层错误
func (e *BusinessError) Unwrap() error {
	return e.cause
}

// Is 同类型即视为相同错误
func (e *BusinessError) Is(target error) bool {
	t, ok := target.(*BusinessError)
	return ok && t.Type == e.Type
}

// NewBusinessError 创建业务错误
func NewBusinessError(code int, errType, message string) *BusinessError {
	return &BusinessError{
		Code:    code,
		Type:    errType,
		Message: message,
	}
}

// WithMessage 复制并替换消息
func (e *BusinessError) WithMessage(format string, args ...interface{}) *BusinessError {
	cp := *e
	cp.Message = fmt.Sprintf(format, args...)
	return &cp
}

// Wrap 复制并挂载底层错误
// Message 保持不变，对外响应不暴露底层错误
func (e *BusinessError) Wrap(err error) *BusinessError {
	cp := *e
	cp.cause = err
	return &cp
}

// WithDetails 复制并附加详情
func (e *BusinessError) WithDetails(details ...ErrorDetail) *BusinessError {
	cp := *e
	cp.Details = append(append([]ErrorDetail(nil), e.Details...), details...)
	return &cp
}

// As 从错误链中提取业务错误
func As(err error) (*BusinessError, bool) {
	var be *BusinessError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}
