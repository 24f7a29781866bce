package domain

import (
	"context"
	"time"
)

type Event struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"not null" json:"description"`
	Date        time.Time `gorm:"not null;index" json:"date"`
	Location    string    `gorm:"not null" json:"location"`
	Organizer   string    `json:"organizer"`
	AuthorID    string    `gorm:"type:uuid;not null" json:"authorId"`
	ImageURL    *string   `json:"imageUrl,omitempty"`
	ImageKey    *string   `json:"-"`
	TicketURL   *string   `json:"ticketUrl,omitempty"`
	Published   bool      `gorm:"not null;default:true" json:"published"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
	Posts       []Post    `gorm:"foreignKey:EventID" json:"posts,omitempty"`
}

type EventRepository interface {
	CreateEvent(ctx context.Context, event *Event) error
	GetEventByID(ctx context.Context, id string) (*Event, error)
	ListEvents(ctx context.Context) ([]Event, error)
}

type EventUseCase interface {
	CreateEvent(ctx context.Context, event *Event) (*Event, error)
	GetEvent(ctx context.Context, id string) (*Event, error)
	ListEvents(ctx context.Context) ([]Event, error)
}
