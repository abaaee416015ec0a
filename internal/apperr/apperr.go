// Package apperr 定义全局统一的业务错误类别。
// 底层 I/O 错误在发生处记录日志后,只以通用的 ErrServer 向外暴露,
// 响应中不携带系统诊断信息。
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidInput 输入数据无效(名称、长度、字符集、文件类型等)
	ErrInvalidInput = errors.New("输入数据无效")
	// ErrQuotaExceeded 存储空间不足
	ErrQuotaExceeded = errors.New("没有足够的存储空间保存此文件")
	// ErrNotFound 记录、文件或令牌不存在
	ErrNotFound = errors.New("资源不存在")
	// ErrPermissionDenied 无权访问(未激活的作者、未授权的编辑者)
	ErrPermissionDenied = errors.New("访问被拒绝")
	// ErrServer 服务器内部错误
	ErrServer = errors.New("服务器错误")
)

// Wrap 以指定错误类别包装一条描述信息
func Wrap(kind error, message string) error {
	return fmt.Errorf("%s: %w", message, kind)
}

// Wrapf 以指定错误类别包装格式化的描述信息
func Wrapf(kind error, format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, kind)...)
}

// HTTPStatus 将错误类别映射为HTTP状态码
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrQuotaExceeded):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrPermissionDenied):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
