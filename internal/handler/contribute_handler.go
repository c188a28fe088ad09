package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/seedfund/sfs/internal/logic"
	"gorm.io/gorm"
)

type ContributeHandler struct {
	contributeLogic *logic.ContributeLogic
}

func NewContributeHandler(db *gorm.DB, tokens logic.TokenInfoProvider) *ContributeHandler {
	return &ContributeHandler{
		contributeLogic: logic.NewContributeLogic(db, tokens),
	}
}

// Contribute 本链出资
func (h *ContributeHandler) Contribute(c *gin.Context) {
	id, ok := parseProjectId(c)
	if !ok {
		return
	}
	var req ContributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	project, err := h.contributeLogic.Contribute(logic.ContributeParams{
		ProjectId:        id,
		Backer:           req.Backer,
		Amount:           req.Amount,
		Stage:            req.Stage,
		TokenAmount:      req.TokenAmount,
		Otherchain:       req.Otherchain,
		OtherchainWallet: req.OtherchainWallet,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "出资成功", project)
}

// ContributeExternal 跨链出资
func (h *ContributeHandler) ContributeExternal(c *gin.Context) {
	id, ok := parseProjectId(c)
	if !ok {
		return
	}
	var req ContributeExternalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	project, err := h.contributeLogic.ContributeExternal(logic.ContributeParams{
		ProjectId:        id,
		Backer:           req.Backer,
		Amount:           req.Amount,
		Stage:            req.Stage,
		TokenAmount:      req.TokenAmount,
		Otherchain:       req.Otherchain,
		OtherchainWallet: req.OtherchainWallet,
	}, req.Denom)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "出资成功", project)
}
