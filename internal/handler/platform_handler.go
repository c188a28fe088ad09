package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/seedfund/sfs/internal/logic"
	"gorm.io/gorm"
)

type PlatformHandler struct {
	configLogic    *logic.ConfigLogic
	communityLogic *logic.CommunityLogic
}

func NewPlatformHandler(db *gorm.DB) *PlatformHandler {
	return &PlatformHandler{
		configLogic:    logic.NewConfigLogic(db),
		communityLogic: logic.NewCommunityLogic(db),
	}
}

// GetConfig 获取平台配置
func (h *PlatformHandler) GetConfig(c *gin.Context) {
	cfg, err := h.configLogic.GetConfig()
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", cfg)
}

// SetConfig 更新平台配置
func (h *PlatformHandler) SetConfig(c *gin.Context) {
	var req SetConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	err := h.configLogic.SetConfig(req.Caller, logic.SetConfigParams{
		Owner:           req.Owner,
		Treasury:        req.Treasury,
		Denom:           req.Denom,
		Decimals:        req.Decimals,
		VestingContract: req.VestingContract,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "平台配置已更新", nil)
}

// TransferAllFunds 归集服务全部余额
func (h *PlatformHandler) TransferAllFunds(c *gin.Context) {
	var req TransferAllRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.configLogic.TransferAllFunds(req.Caller, req.Wallet); err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "余额归集请求已登记", nil)
}

// GetCommunity 获取社区成员名单
func (h *PlatformHandler) GetCommunity(c *gin.Context) {
	members, err := h.communityLogic.List()
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", gin.H{"members": members, "total": len(members)})
}

// AddCommunityMember 添加社区成员
func (h *PlatformHandler) AddCommunityMember(c *gin.Context) {
	var req CommunityMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.communityLogic.Add(req.Caller, req.Wallet); err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "社区成员已添加", nil)
}

// RemoveCommunityMember 移除社区成员
func (h *PlatformHandler) RemoveCommunityMember(c *gin.Context) {
	wallet := c.Param("wallet")
	var req CallerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.communityLogic.Remove(req.Caller, wallet); err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "社区成员已移除", nil)
}
