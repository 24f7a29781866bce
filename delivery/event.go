package delivery

import (
	"net/http"
	"time"

	"github.com/bbois1999/gun-event/domain"
	"github.com/bbois1999/gun-event/middleware"
	"github.com/bbois1999/gun-event/utils"

	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	eventUC domain.EventUseCase
}

func NewEventHandler(r *gin.Engine, eventUC domain.EventUseCase, sessions *utils.SessionManager) {
	handler := &EventHandler{eventUC: eventUC}

	r.GET("/events", handler.ListEvents)
	r.GET("/events/:id", handler.GetEvent)

	protected := r.Group("/")
	protected.Use(middleware.SessionAuth(sessions))
	{
		protected.POST("/events", handler.CreateEvent)
	}
}

type CreateEventRequest struct {
	Title       string    `json:"title" binding:"required,max=200"`
	Description string    `json:"description" binding:"required"`
	Date        time.Time `json:"date" binding:"required"`
	Location    string    `json:"location" binding:"required"`
	Organizer   string    `json:"organizer"`
	ImageURL    *string   `json:"imageUrl"`
	ImageKey    *string   `json:"imageKey"`
	TicketURL   *string   `json:"ticketUrl"`
}

func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.TranslateValidationError(err)})
		return
	}

	event, err := h.eventUC.CreateEvent(c.Request.Context(), &domain.Event{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Location:    req.Location,
		Organizer:   req.Organizer,
		AuthorID:    middleware.CurrentUserID(c),
		ImageURL:    req.ImageURL,
		ImageKey:    req.ImageKey,
		TicketURL:   req.TicketURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

func (h *EventHandler) GetEvent(c *gin.Context) {
	event, err := h.eventUC.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) ListEvents(c *gin.Context) {
	events, err := h.eventUC.ListEvents(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}
