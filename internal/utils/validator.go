package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

// 校验规则使用的正则
var (
	// contentNameChars 内容名称允许的字符集(含西语字符与常用标点)
	contentNameChars = regexp.MustCompile(`^[A-Za-z0-9áéíóúÁÉÍÓÚüÜñÑ¿?¡!()+\-*/=#$%., ]+$`)
	// personNameChars 人名只允许字母(含重音)与空格
	personNameChars = regexp.MustCompile(`^[a-zA-ZáéíóúÁÉÍÓÚüÜñÑ\s]+$`)
	emailPattern    = regexp.MustCompile(`^[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}$`)

	passwordLower   = regexp.MustCompile(`[a-z]`)
	passwordUpper   = regexp.MustCompile(`[A-Z]`)
	passwordDigit   = regexp.MustCompile(`\d`)
	passwordSpecial = regexp.MustCompile(`[-_/@$!%*?&.,:;]`)
	passwordChars   = regexp.MustCompile(`^[A-Za-z\d\-_/@$!%*?&.,:;]+$`)
)

// InitValidator 初始化验证器
func InitValidator() {
	validate = validator.New()

	// 注册自定义验证函数
	validate.RegisterValidation("contentname", validateContentName)
	validate.RegisterValidation("personname", validatePersonName)
	validate.RegisterValidation("emailformat", validateEmailFormat)
	validate.RegisterValidation("passwordcomplex", validatePasswordComplexity)
}

// GetValidator 获取验证器实例
func GetValidator() *validator.Validate {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// validateContentName 验证内容名称:1-50字符、限定字符集、不能只有空格
func validateContentName(fl validator.FieldLevel) bool {
	return CheckContentName(fl.Field().String()) == nil
}

// validatePersonName 验证人名(可选字段为空时通过)
func validatePersonName(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	if name == "" {
		return true
	}
	return personNameChars.MatchString(name)
}

// validateEmailFormat 验证邮箱格式
func validateEmailFormat(fl validator.FieldLevel) bool {
	return emailPattern.MatchString(fl.Field().String())
}

// validatePasswordComplexity 验证密码复杂度:
// 至少一个小写、一个大写、一个数字和一个特殊字符
func validatePasswordComplexity(fl validator.FieldLevel) bool {
	pw := fl.Field().String()
	return passwordLower.MatchString(pw) &&
		passwordUpper.MatchString(pw) &&
		passwordDigit.MatchString(pw) &&
		passwordSpecial.MatchString(pw) &&
		passwordChars.MatchString(pw)
}

// CheckContentName 校验内容名称,供服务层在更新局部字段时单独调用
func CheckContentName(name string) error {
	if n := utf8.RuneCountInString(name); n < 1 || n > 50 {
		return fmt.Errorf("名称长度必须在1到50个字符之间")
	}
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("名称不能只包含空格")
	}
	if !contentNameChars.MatchString(name) {
		return fmt.Errorf("名称包含不允许的字符")
	}
	return nil
}

// ValidateStruct 验证结构体
func ValidateStruct(s interface{}) error {
	v := GetValidator()
	if err := v.Struct(s); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError 格式化验证错误
func formatValidationError(err error) error {
	var errors []string

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := e.Field()
			tag := e.Tag()
			param := e.Param()

			var message string
			switch tag {
			case "required":
				message = fmt.Sprintf("%s是必填字段", field)
			case "min":
				message = fmt.Sprintf("%s长度不能小于%s", field, param)
			case "max":
				message = fmt.Sprintf("%s长度不能大于%s", field, param)
			case "emailformat":
				message = fmt.Sprintf("%s必须是有效的邮箱地址", field)
			case "contentname":
				message = fmt.Sprintf("%s必须是1-50个允许字符,且不能只有空格", field)
			case "personname":
				message = fmt.Sprintf("%s只能包含字母和空格", field)
			case "passwordcomplex":
				message = fmt.Sprintf("%s必须包含大小写字母、数字和特殊字符", field)
			default:
				message = fmt.Sprintf("%s验证失败: %s", field, tag)
			}

			errors = append(errors, message)
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "; "))
	}

	return err
}
