package util

import "github.com/go-playground/validator/v10"

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateDTO 对 validate 标签做深度校验，gin 绑定只覆盖 binding 标签。
// 原样返回 validator.ValidationErrors，统一由响应层翻译成 400。
func ValidateDTO(dto any) error {
	return validate.Struct(dto)
}
