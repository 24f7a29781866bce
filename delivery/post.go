package delivery

import (
	"net/http"
	"strconv"

	"github.com/bbois1999/gun-event/domain"
	"github.com/bbois1999/gun-event/middleware"
	"github.com/bbois1999/gun-event/utils"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postUC domain.PostUseCase
}

func NewPostHandler(r *gin.Engine, postUC domain.PostUseCase, sessions *utils.SessionManager) {
	handler := &PostHandler{postUC: postUC}

	r.GET("/posts", handler.ListPosts)
	r.GET("/posts/feed", handler.Feed)
	r.GET("/posts/:id", handler.GetPost)

	protected := r.Group("/")
	protected.Use(middleware.SessionAuth(sessions))
	{
		protected.POST("/posts", handler.CreatePost)
		protected.PUT("/posts/:id", handler.UpdatePost)
		protected.DELETE("/posts/:id", handler.DeletePost)
		protected.GET("/posts/following", handler.FollowingFeed)
	}
}

type CreatePostRequest struct {
	Title   string  `json:"title" binding:"required,max=200"`
	Content string  `json:"content" binding:"required"`
	EventID *string `json:"eventId"`
	Images  []struct {
		URL string `json:"url" binding:"required"`
		Key string `json:"key" binding:"required"`
	} `json:"images" binding:"max=10"`
}

func (h *PostHandler) CreatePost(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.TranslateValidationError(err)})
		return
	}

	images := make([]domain.NewPostImage, 0, len(req.Images))
	for _, img := range req.Images {
		images = append(images, domain.NewPostImage{URL: img.URL, Key: img.Key})
	}

	post, err := h.postUC.CreatePost(c.Request.Context(), middleware.CurrentUserID(c), req.Title, req.Content, req.EventID, images)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (h *PostHandler) GetPost(c *gin.Context) {
	post, err := h.postUC.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) ListPosts(c *gin.Context) {
	q := domain.PostQuery{
		EventID: c.Query("eventId"),
		Limit:   intQuery(c, "limit", 0),
	}
	posts, err := h.postUC.ListPosts(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) Feed(c *gin.Context) {
	posts, err := h.postUC.Feed(c.Request.Context(), intQuery(c, "limit", 50))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) FollowingFeed(c *gin.Context) {
	posts, err := h.postUC.FollowingFeed(c.Request.Context(), middleware.CurrentUserID(c), intQuery(c, "limit", 50))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

type UpdatePostRequest struct {
	Title   string `json:"title" binding:"required,max=200"`
	Content string `json:"content" binding:"required"`
}

func (h *PostHandler) UpdatePost(c *gin.Context) {
	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.TranslateValidationError(err)})
		return
	}

	post, err := h.postUC.UpdatePost(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"), req.Title, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) DeletePost(c *gin.Context) {
	if err := h.postUC.DeletePost(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func intQuery(c *gin.Context, name string, def int) int {
	if v := c.Query(name); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}
