package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/seedfund/sfs/internal/logic"
	"github.com/seedfund/sfs/internal/model"
	"gorm.io/gorm"
)

type ProjectHandler struct {
	projectLogic *logic.ProjectLogic
}

func NewProjectHandler(db *gorm.DB) *ProjectHandler {
	return &ProjectHandler{
		projectLogic: logic.NewProjectLogic(db),
	}
}

// parseProjectId 解析路径中的项目ID
func parseProjectId(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return 0, false
	}
	return id, true
}

// AddProject 登记或更新项目
func (h *ProjectHandler) AddProject(c *gin.Context) {
	var req AddProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	milestones := make([]model.MilestoneState, 0, len(req.Milestones))
	for _, m := range req.Milestones {
		milestones = append(milestones, model.MilestoneState{
			Title:       m.Title,
			Description: m.Description,
			Amount:      m.Amount,
		})
	}

	input := &model.ProjectModel{
		Id:               req.Id,
		Company:          req.Company,
		Title:            req.Title,
		Description:      req.Description,
		Ecosystem:        req.Ecosystem,
		FundType:         req.FundType,
		CreatedDate:      req.CreatedDate,
		Saft:             req.Saft,
		Logo:             req.Logo,
		Whitepaper:       req.Whitepaper,
		Website:          req.Website,
		Email:            req.Email,
		Country:          req.Country,
		CofounderName:    req.CofounderName,
		ServicePlatform:  req.ServicePlatform,
		ServiceCharity:   req.ServiceCharity,
		ProfessionalLink: req.ProfessionalLink,
		Creator:          req.Creator,
		FundingTarget:    req.FundingTarget,
		TokenAddress:     req.TokenAddress,
		Milestones:       milestones,
		TeamMembers:      req.TeamMembers,
		VestingSchedule:  req.VestingSchedule,
	}

	project, err := h.projectLogic.AddProject(input)
	if err != nil {
		HandleError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "项目登记成功", project)
}

// GetProjects 获取项目列表
func (h *ProjectHandler) GetProjects(c *gin.Context) {
	projects, err := h.projectLogic.GetProjects(c.Query("status"))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", gin.H{"projects": projects, "total": len(projects)})
}

// GetProject 获取项目详情
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, ok := parseProjectId(c)
	if !ok {
		return
	}
	project, err := h.projectLogic.GetProject(id)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", project)
}

// ApproveProject 平台审核通过
func (h *ProjectHandler) ApproveProject(c *gin.Context) {
	id, ok := parseProjectId(c)
	if !ok {
		return
	}
	var req CallerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.projectLogic.Approve(req.Caller, id); err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "项目审核通过", nil)
}

// SetProjectStatus 管理员状态码旁路
func (h *ProjectHandler) SetProjectStatus(c *gin.Context) {
	id, ok := parseProjectId(c)
	if !ok {
		return
	}
	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.projectLogic.SetProjectStatus(req.Caller, id, req.Code); err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "项目状态已更新", nil)
}

// SetFundraisingStage 更新募资阶段标记
func (h *ProjectHandler) SetFundraisingStage(c *gin.Context) {
	id, ok := parseProjectId(c)
	if !ok {
		return
	}
	var req SetStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.projectLogic.SetFundraisingStage(id, req.Stage); err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "募资阶段已更新", nil)
}

// RemoveProject 删除项目
func (h *ProjectHandler) RemoveProject(c *gin.Context) {
	id, ok := parseProjectId(c)
	if !ok {
		return
	}
	var req CallerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.projectLogic.Remove(req.Caller, id); err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "项目已删除", nil)
}
