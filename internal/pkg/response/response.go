package response

import (
	"Trellis/internal/service"
	"errors"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

// Success 成功返回 JSON 数据
func Success(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusOK, data)
}

// Text 成功返回纯文本消息
func Text(ctx *gin.Context, message string) {
	ctx.String(http.StatusOK, message)
}

// Fail 以指定状态码返回纯文本消息
func Fail(ctx *gin.Context, status int, message string) {
	ctx.String(status, message)
}

// Error 将业务错误映射为 HTTP 状态码，未登记的错误一律 500
func Error(ctx *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		Fail(ctx, http.StatusBadRequest, "Improper or missing request parameters")
		return
	}

	var unmarshalTypeError *json.UnmarshalTypeError
	if errors.As(err, &unmarshalTypeError) {
		Fail(ctx, http.StatusBadRequest, "Improper request body")
		return
	}

	status, ok := service.ErrorMap[err]
	if !ok {
		status = http.StatusInternalServerError
		log.ErrorContext(ctx.Request.Context(), "Unexpected error", "err", err)
		Fail(ctx, status, "Attempt failed due to an unexpected error")
		return
	}
	Fail(ctx, status, err.Error())
}
