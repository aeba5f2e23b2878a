package ginx

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"tourshop/internal/app/pkg/errorx"
)

// Response 统一响应结构
type Response struct {
	Meta Meta        `json:"meta"`
	Data interface{} `json:"data,omitempty"`
}

// Meta 元数据
type Meta struct {
	Code     int           `json:"code" example:"200"`
	Type     string        `json:"type" example:"OK"`
	Message  string        `json:"message" example:"OK"`
	Details  []ErrorDetail `json:"details,omitempty"`
	Warnings []string      `json:"warnings,omitempty"`
}

// ErrorDetail 错误详情
type ErrorDetail struct {
	Path string `json:"path" example:"customer_email"`
	Info string `json:"info" example:"customer_email must be a valid email address"`
}

// 响应类型常量
const (
	TypeOK              = "OK"
	TypeCreated         = "Created"
	TypeValidationError = "ValidationError"
	TypeNotFound        = "NotFound"
	TypeUnauthenticated = "Unauthenticated"
	TypeInternalError   = "InternalError"
)

// Success 成功响应（200）
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Meta: Meta{
			Code:    http.StatusOK,
			Type:    TypeOK,
			Message: "OK",
		},
		Data: data,
	})
}

// Created 创建成功响应（201），可附带非致命警告
func Created(c *gin.Context, data interface{}, warnings []string) {
	c.JSON(http.StatusCreated, Response{
		Meta: Meta{
			Code:     http.StatusCreated,
			Type:     TypeCreated,
			Message:  "Created",
			Warnings: warnings,
		},
		Data: data,
	})
}

// Error 错误响应
func Error(c *gin.Context, httpCode int, errType, message string) {
	c.JSON(httpCode, Response{
		Meta: Meta{
			Code:    httpCode,
			Type:    errType,
			Message: message,
		},
	})
}

// ErrorWithDetails 带详情的错误响应
func ErrorWithDetails(c *gin.Context, httpCode int, errType, message string, details []ErrorDetail) {
	c.JSON(httpCode, Response{
		Meta: Meta{
			Code:    httpCode,
			Type:    errType,
			Message: message,
			Details: details,
		},
	})
}

// FromError 将业务错误映射为响应；非业务错误统一返回 500，不暴露内部信息
func FromError(c *gin.Context, err error) {
	var be *errorx.BusinessError
	if errors.As(err, &be) {
		details := make([]ErrorDetail, 0, len(be.Details))
		for _, d := range be.Details {
			details = append(details, ErrorDetail{Path: d.Path, Info: d.Info})
		}
		ErrorWithDetails(c, be.Code, be.Type, be.Message, details)
		return
	}
	InternalError(c, "internal server error")
}

// BadRequest 400 错误
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, TypeValidationError, message)
}

// BadRequestWithValidation 400 错误（带验证详情）
func BadRequestWithValidation(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		details := make([]ErrorDetail, 0, len(validationErrs))
		for _, fieldErr := range validationErrs {
			details = append(details, ErrorDetail{
				Path: fieldErr.Field(),
				Info: getValidationErrorMessage(fieldErr),
			})
		}
		ErrorWithDetails(c, http.StatusBadRequest, TypeValidationError, "Validation failed", details)
		return
	}

	BadRequest(c, err.Error())
}

// Unauthenticated 401 错误
func Unauthenticated(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, Response{
		Meta: Meta{
			Code:    http.StatusUnauthorized,
			Type:    TypeUnauthenticated,
			Message: message,
		},
	})
}

// Forbidden 403 错误（中间件使用，终止后续处理）
func Forbidden(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusForbidden, Response{
		Meta: Meta{
			Code:    http.StatusForbidden,
			Type:    errorx.TypeUnauthorized,
			Message: message,
		},
	})
}

// NotFound 404 错误
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, TypeNotFound, message)
}

// InternalError 500 错误
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, TypeInternalError, message)
}

// getValidationErrorMessage 根据验证错误类型返回友好的错误消息
func getValidationErrorMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return fieldErr.Field() + " is required"
	case "email":
		return fieldErr.Field() + " must be a valid email address"
	case "min":
		return fieldErr.Field() + " must be at least " + fieldErr.Param()
	case "max":
		return fieldErr.Field() + " must be at most " + fieldErr.Param()
	case "oneof":
		return fieldErr.Field() + " must be one of: " + fieldErr.Param()
	default:
		return fieldErr.Field() + " is invalid"
	}
}
