package delivery

import (
	"net/http"

	"github.com/bbois1999/gun-event/domain"
	"github.com/bbois1999/gun-event/middleware"
	"github.com/bbois1999/gun-event/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userUC   domain.UserUseCase
	postUC   domain.PostUseCase
	socialUC domain.SocialUseCase
}

func NewUserHandler(
	r *gin.Engine,
	userUC domain.UserUseCase,
	postUC domain.PostUseCase,
	socialUC domain.SocialUseCase,
	sessions *utils.SessionManager,
) {
	handler := &UserHandler{userUC: userUC, postUC: postUC, socialUC: socialUC}

	public := r.Group("/users")
	public.Use(middleware.OptionalSessionAuth(sessions))
	{
		public.GET("/:id", handler.GetUser)
		public.GET("/:id/posts", handler.GetUserPosts)
		public.GET("/:id/followers", handler.GetFollowers)
	}

	protected := r.Group("/users")
	protected.Use(middleware.SessionAuth(sessions))
	{
		protected.PATCH("/:id", handler.UpdateProfile)
		protected.POST("/:id/followers", handler.Follow)
		protected.DELETE("/:id/followers", handler.Unfollow)
	}
}

func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userUC.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type UpdateProfileRequest struct {
	ProfileImageURL string `json:"profileImageUrl" binding:"required,url"`
	ProfileImageKey string `json:"profileImageKey" binding:"required"`
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	if c.Param("id") != middleware.CurrentUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot modify another user's profile"})
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.TranslateValidationError(err)})
		return
	}

	user, err := h.userUC.UpdateProfileImage(c.Request.Context(), c.Param("id"), req.ProfileImageURL, req.ProfileImageKey)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) GetUserPosts(c *gin.Context) {
	q := domain.PostQuery{
		AuthorID: c.Param("id"),
		Limit:    intQuery(c, "limit", 50),
	}
	// drafts stay visible to their author
	if middleware.CurrentUserID(c) != q.AuthorID {
		q.PublishedOnly = true
	}

	posts, err := h.postUC.ListPosts(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *UserHandler) GetFollowers(c *gin.Context) {
	stats, err := h.socialUC.FollowerStats(c.Request.Context(), c.Param("id"), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *UserHandler) Follow(c *gin.Context) {
	followerID := middleware.CurrentUserID(c)
	followedID := c.Param("id")
	if followerID == followedID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot follow yourself"})
		return
	}

	if err := h.socialUC.Follow(c.Request.Context(), followerID, followedID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": "Followed"})
}

func (h *UserHandler) Unfollow(c *gin.Context) {
	if err := h.socialUC.Unfollow(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": "Unfollowed"})
}
