package delivery

import (
	"net/http"
	"strings"

	"github.com/bbois1999/gun-event/middleware"
	"github.com/bbois1999/gun-event/provider"
	"github.com/bbois1999/gun-event/utils"

	"github.com/gin-gonic/gin"
)

// maxUploadBytes caps image uploads at 8 MiB.
const maxUploadBytes = 8 << 20

type UploadHandler struct {
	uploader *provider.Uploader
}

func NewUploadHandler(r *gin.Engine, uploader *provider.Uploader, sessions *utils.SessionManager) {
	handler := &UploadHandler{uploader: uploader}

	protected := r.Group("/")
	protected.Use(middleware.SessionAuth(sessions))
	{
		protected.POST("/uploads", handler.Upload)
	}
}

func (h *UploadHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A file is required"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only image uploads are allowed"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read the uploaded file"})
		return
	}
	defer file.Close()

	result, err := h.uploader.Upload(c.Request.Context(), fileHeader.Filename, contentType, file)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}
