package response

import (
	"errors"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"MealHub/internal/api/dto"
	"MealHub/internal/service"
)

// Success 成功返回封装
func Success(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusOK, dto.Response{
		Success: true,
		Data:    data,
	})
}

// Created 资源创建成功返回封装
func Created(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusCreated, dto.Response{
		Success: true,
		Data:    data,
	})
}

// SuccessMsg 仅携带提示信息的成功返回
func SuccessMsg(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusOK, dto.Response{
		Success: true,
		Message: message,
	})
}

// Fail 失败返回封装
func Fail(c *gin.Context, status int, code string, message string) {
	c.JSON(status, dto.Response{
		Success: false,
		Error: &dto.ErrorBody{
			Message: message,
			Code:    code,
		},
	})
}

// Error 将业务错误翻译为统一的错误响应
func Error(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		Fail(c, http.StatusBadRequest, service.CodeInvalidInput, "invalid request body")
		return
	}

	var unmarshalTypeError *json.UnmarshalTypeError
	if errors.As(err, &unmarshalTypeError) {
		Fail(c, http.StatusBadRequest, service.CodeInvalidInput, "malformed json body")
		return
	}

	meta, ok := service.ErrorMap[err]
	if !ok {
		log.Error("Error", "err", err)
		Fail(c, http.StatusInternalServerError, service.CodeInternalError, "internal server error")
		return
	}
	Fail(c, meta.Status, meta.Code, err.Error())
}
