package handler

import (
	"github.com/gin-gonic/gin"

	"finpin-api/internal/interfaces/http/dto"
	"finpin-api/pkg/errors"
	"finpin-api/pkg/logger"
)

// respondError 按 AppError 的 HTTP 状态码输出错误，未知错误返回 500
func respondError(c *gin.Context, op string, err error) {
	ctx := c.Request.Context()
	if errors.IsAppError(err) {
		appErr := errors.AsAppError(err)
		if appErr.HTTPStatus >= 500 {
			logger.Error(ctx, op+" failed", err)
		} else {
			logger.Debug(ctx, op+" rejected", "error", err.Error())
		}
		dto.ErrorWithDetail(c, appErr.HTTPStatus, appErr.Message, &dto.ErrorDetail{
			ErrorCode: string(appErr.Code),
			Details:   appErr.Detail,
		})
		return
	}
	logger.Error(ctx, op+" failed", err)
	dto.InternalError(c, op+" failed")
}

// bindJSON 绑定请求体，失败时输出 400
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return false
	}
	return true
}
