package delivery

import (
	"net/http"

	"github.com/bbois1999/gun-event/domain"
	"github.com/bbois1999/gun-event/middleware"
	"github.com/bbois1999/gun-event/utils"

	"github.com/gin-gonic/gin"
)

type SocialHandler struct {
	socialUC domain.SocialUseCase
}

func NewSocialHandler(r *gin.Engine, socialUC domain.SocialUseCase, sessions *utils.SessionManager) {
	handler := &SocialHandler{socialUC: socialUC}

	protected := r.Group("/")
	protected.Use(middleware.SessionAuth(sessions))
	{
		protected.POST("/posts/:id/likes", handler.LikePost)
		protected.DELETE("/posts/:id/likes", handler.UnlikePost)
		protected.GET("/notifications", handler.ListNotifications)
		protected.PATCH("/notifications", handler.MarkNotificationsRead)
	}
}

func (h *SocialHandler) LikePost(c *gin.Context) {
	err := h.socialUC.LikePost(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": "Liked"})
}

func (h *SocialHandler) UnlikePost(c *gin.Context) {
	err := h.socialUC.UnlikePost(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": "Unliked"})
}

func (h *SocialHandler) ListNotifications(c *gin.Context) {
	page, err := h.socialUC.Notifications(
		c.Request.Context(),
		middleware.CurrentUserID(c),
		intQuery(c, "limit", 20),
		c.Query("cursor"),
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

type MarkReadRequest struct {
	// IDs empty means mark everything read.
	IDs []string `json:"ids"`
}

func (h *SocialHandler) MarkNotificationsRead(c *gin.Context) {
	var req MarkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.TranslateValidationError(err)})
		return
	}

	err := h.socialUC.MarkNotificationsRead(c.Request.Context(), middleware.CurrentUserID(c), req.IDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": "Notifications updated"})
}
