package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "giveaway-bot-backend/internal/common/errors"
	"giveaway-bot-backend/internal/common/middleware"
	"giveaway-bot-backend/internal/features/giveaway/models"
	giveawayservice "giveaway-bot-backend/internal/features/giveaway/service"
)

type GiveawayHandler struct {
	service giveawayservice.GiveawayService
}

func NewGiveawayHandler(service giveawayservice.GiveawayService) *GiveawayHandler {
	return &GiveawayHandler{service: service}
}

func (h *GiveawayHandler) RegisterRoutes(router *gin.RouterGroup) {
	giveaways := router.Group("/giveaways")
	{
		giveaways.POST("", h.create)
		giveaways.GET("/:id", h.getByID)
		giveaways.POST("/:id/entries", h.toggleEntry)
		giveaways.POST("/:id/end", h.end)
		giveaways.POST("/:id/reroll", h.reroll)
	}

	guilds := router.Group("/guilds")
	{
		guilds.GET("/:guild_id/giveaways", h.getByGuild)
	}

	messages := router.Group("/messages")
	{
		messages.GET("/:message_id/giveaway", h.getByMessageID)
		messages.POST("/:message_id/reroll", h.rerollByMessage)
	}
}

func (h *GiveawayHandler) create(c *gin.Context) {
	var create models.GiveawayCreate
	if err := c.ShouldBindJSON(&create); err != nil {
		middleware.SendError(c, apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "Invalid request body"))
		return
	}

	response, err := h.service.Create(c.Request.Context(), &create)
	if err != nil {
		middleware.SendError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response)
}

func (h *GiveawayHandler) getByID(c *gin.Context) {
	response, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.SendError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *GiveawayHandler) getByMessageID(c *gin.Context) {
	response, err := h.service.GetByMessageID(c.Request.Context(), c.Param("message_id"))
	if err != nil {
		middleware.SendError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *GiveawayHandler) getByGuild(c *gin.Context) {
	responses, err := h.service.GetByGuild(c.Request.Context(), c.Param("guild_id"))
	if err != nil {
		middleware.SendError(c, err)
		return
	}
	c.JSON(http.StatusOK, responses)
}

type toggleEntryRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

func (h *GiveawayHandler) toggleEntry(c *gin.Context) {
	var req toggleEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.SendError(c, apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "Invalid request body"))
		return
	}

	result, err := h.service.ToggleEntry(c.Request.Context(), c.Param("id"), req.UserID)
	if err != nil {
		middleware.SendError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *GiveawayHandler) end(c *gin.Context) {
	result, err := h.service.End(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.SendError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type rerollRequest struct {
	Count int `json:"count"`
}

func (h *GiveawayHandler) reroll(c *gin.Context) {
	// The count is optional; an empty body rerolls a single winner.
	var req rerollRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		middleware.SendError(c, apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "Invalid request body"))
		return
	}

	result, err := h.service.Reroll(c.Request.Context(), c.Param("id"), req.Count)
	if err != nil {
		middleware.SendError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *GiveawayHandler) rerollByMessage(c *gin.Context) {
	var req rerollRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		middleware.SendError(c, apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "Invalid request body"))
		return
	}

	result, err := h.service.RerollByMessage(c.Request.Context(), c.Param("message_id"), req.Count)
	if err != nil {
		middleware.SendError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
