package service

import (
	"context"
	"time"

	"giveaway-bot-backend/internal/features/giveaway/models"
)

// Announcer renders giveaway state into the chat platform. All Announcer
// calls are best-effort from the service's point of view: the durable state
// transition always happens first, render failures are logged and swallowed.
type Announcer interface {
	PostAnnouncement(ctx context.Context, channelID string, view *models.GiveawayView) (messageID string, err error)
	UpdateAnnouncement(ctx context.Context, channelID, messageID string, view *models.GiveawayView) error
	PostWinnersMessage(ctx context.Context, channelID, text string) error
}

// ViewCache is the slice of the cache service the read side uses.
type ViewCache interface {
	GetOrSet(ctx context.Context, key string, dest interface{}, ttl time.Duration, setter func() (interface{}, error)) error
	InvalidateGiveaway(ctx context.Context, giveawayID string) error
}

// GiveawayService drives the giveaway lifecycle: creation, entry toggling,
// ending with winner selection, rerolls and read-side queries.
type GiveawayService interface {
	Create(ctx context.Context, create *models.GiveawayCreate) (*models.GiveawayResponse, error)

	GetByID(ctx context.Context, id string) (*models.GiveawayResponse, error)
	GetByMessageID(ctx context.Context, messageID string) (*models.GiveawayResponse, error)
	GetByGuild(ctx context.Context, guildID string) ([]*models.GiveawayResponse, error)

	ToggleEntry(ctx context.Context, giveawayID, userID string) (*models.EntryResult, error)

	End(ctx context.Context, giveawayID string) (*models.EndResult, error)
	Reroll(ctx context.Context, giveawayID string, count int) (*models.RerollResult, error)
	RerollByMessage(ctx context.Context, messageID string, count int) (*models.RerollResult, error)

	// EndDue ends every active giveaway whose end time has passed,
	// sequentially, and returns how many were ended by this call.
	EndDue(ctx context.Context, now time.Time) (int, error)
}
