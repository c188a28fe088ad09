package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/seedfund/sfs/internal/logic"
	"gorm.io/gorm"
)

type MilestoneHandler struct {
	milestoneLogic *logic.MilestoneLogic
}

func NewMilestoneHandler(db *gorm.DB) *MilestoneHandler {
	return &MilestoneHandler{
		milestoneLogic: logic.NewMilestoneLogic(db),
	}
}

// CastVote 里程碑投票
func (h *MilestoneHandler) CastVote(c *gin.Context) {
	id, ok := parseProjectId(c)
	if !ok {
		return
	}
	var req VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.milestoneLogic.CastVote(id, req.Voter, req.Voted); err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "投票已记录", nil)
}

// ReleaseMilestone 放款当前里程碑
func (h *MilestoneHandler) ReleaseMilestone(c *gin.Context) {
	id, ok := parseProjectId(c)
	if !ok {
		return
	}
	if err := h.milestoneLogic.Release(id); err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "里程碑已放款", nil)
}

// CompleteProject 终结项目，清空资金池转给创建者
func (h *MilestoneHandler) CompleteProject(c *gin.Context) {
	id, ok := parseProjectId(c)
	if !ok {
		return
	}
	if err := h.milestoneLogic.Complete(id); err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "项目已完成", nil)
}

// FailProject 标记项目失败
func (h *MilestoneHandler) FailProject(c *gin.Context) {
	id, ok := parseProjectId(c)
	if !ok {
		return
	}
	if err := h.milestoneLogic.Fail(id); err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "项目已标记失败", nil)
}
