package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/seedfund/sfs/internal/logger"
	"github.com/seedfund/sfs/internal/logic"
)

// Response 通用响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
		Data:    nil,
	})
}

// HandleError 业务错误到HTTP状态码的映射
func HandleError(c *gin.Context, err error) {
	var invalidStatus *logic.InvalidStatusError
	var invalidMilestone *logic.InvalidMilestoneStatusError
	var underflow *logic.LedgerUnderflowError
	var overflow *logic.ArithmeticOverflowError

	switch {
	case errors.Is(err, logic.ErrUnauthorized):
		ErrorResponse(c, http.StatusForbidden, err.Error())
	case errors.Is(err, logic.ErrProjectNotFound):
		ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.As(err, &underflow), errors.As(err, &overflow):
		// 记账不变量被破坏，属服务端故障
		logger.Error("记账不变量被破坏: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
	case errors.As(err, &invalidStatus),
		errors.As(err, &invalidMilestone),
		errors.Is(err, logic.ErrNotWhitelisted),
		errors.Is(err, logic.ErrFundsRequired),
		errors.Is(err, logic.ErrAlreadyRegistered),
		errors.Is(err, logic.ErrNotRegistered),
		errors.Is(err, logic.ErrNoEligibleHolders),
		errors.Is(err, logic.ErrInvalidAddress):
		ErrorResponse(c, http.StatusBadRequest, err.Error())
	default:
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
	}
}
