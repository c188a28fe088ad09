package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/seedfund/sfs/internal/logic"
	"github.com/seedfund/sfs/internal/model"
	"gorm.io/gorm"
)

type WhitelistHandler struct {
	whitelistLogic *logic.WhitelistLogic
}

func NewWhitelistHandler(db *gorm.DB) *WhitelistHandler {
	return &WhitelistHandler{
		whitelistLogic: logic.NewWhitelistLogic(db),
	}
}

// OpenWhitelist 开启白名单登记
func (h *WhitelistHandler) OpenWhitelist(c *gin.Context) {
	id, ok := parseProjectId(c)
	if !ok {
		return
	}
	var req OpenWhitelistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.whitelistLogic.Open(req.Caller, id, req.HolderAlloc); err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "白名单已开启", nil)
}

// RegisterWhitelist 自助登记白名单
func (h *WhitelistHandler) RegisterWhitelist(c *gin.Context) {
	id, ok := parseProjectId(c)
	if !ok {
		return
	}
	var req RegisterWhitelistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	tier, ok := model.ParseCardTier(req.Tier)
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "无效的参与者等级")
		return
	}
	if err := h.whitelistLogic.Register(req.Caller, id, tier); err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "白名单登记成功", nil)
}

// CloseWhitelist 关闭白名单并计算票额分配
func (h *WhitelistHandler) CloseWhitelist(c *gin.Context) {
	id, ok := parseProjectId(c)
	if !ok {
		return
	}
	var req CallerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.whitelistLogic.Close(req.Caller, id); err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "白名单已关闭, 进入募资", nil)
}
