package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "giveaway-bot-backend/internal/common/errors"
	"giveaway-bot-backend/internal/common/middleware"
	memberservice "giveaway-bot-backend/internal/features/member/service"
)

type MemberHandler struct {
	service memberservice.MemberService
}

func NewMemberHandler(service memberservice.MemberService) *MemberHandler {
	return &MemberHandler{service: service}
}

func (h *MemberHandler) RegisterRoutes(router *gin.RouterGroup) {
	members := router.Group("/guilds/:guild_id/members/:user_id")
	{
		members.GET("", h.getSnapshot)
		members.POST("/messages", h.recordMessage)
		members.POST("/invites", h.addInvites)
	}
}

func (h *MemberHandler) getSnapshot(c *gin.Context) {
	snapshot, err := h.service.GetSnapshot(c.Request.Context(), c.Param("guild_id"), c.Param("user_id"))
	if err != nil {
		middleware.SendError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

func (h *MemberHandler) recordMessage(c *gin.Context) {
	if err := h.service.RecordMessage(c.Request.Context(), c.Param("guild_id"), c.Param("user_id")); err != nil {
		middleware.SendError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type addInvitesRequest struct {
	Regular int `json:"regular"`
	Bonus   int `json:"bonus"`
}

func (h *MemberHandler) addInvites(c *gin.Context) {
	var req addInvitesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.SendError(c, apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "Invalid request body"))
		return
	}

	if err := h.service.AddInvites(c.Request.Context(), c.Param("guild_id"), c.Param("user_id"), req.Regular, req.Bonus); err != nil {
		middleware.SendError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
