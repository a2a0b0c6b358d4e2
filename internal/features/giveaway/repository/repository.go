package repository

import (
	"context"
	"errors"
	"time"

	"giveaway-bot-backend/internal/features/giveaway/models"
)

var (
	ErrGiveawayNotFound = errors.New("giveaway not found")
)

// GiveawayRepository persists giveaway records, their entry sets and winner
// lists. MarkEnded is the idempotency guard for the ending path: it performs
// the Active -> Ended transition atomically and reports whether this call
// was the one that made it.
type GiveawayRepository interface {
	Create(ctx context.Context, giveaway *models.Giveaway) error
	SetMessageID(ctx context.Context, giveawayID, messageID string) error

	GetByID(ctx context.Context, id string) (*models.Giveaway, error)
	GetByMessageID(ctx context.Context, messageID string) (*models.Giveaway, error)
	GetEndedByMessageID(ctx context.Context, messageID string) (*models.Giveaway, error)
	GetByGuild(ctx context.Context, guildID string) ([]*models.Giveaway, error)

	// GetActiveDueBy returns the IDs of active giveaways whose end time is
	// at or before now.
	GetActiveDueBy(ctx context.Context, now time.Time) ([]string, error)

	AddEntry(ctx context.Context, giveawayID, userID string) (added bool, total int, err error)
	RemoveEntry(ctx context.Context, giveawayID, userID string) (removed bool, total int, err error)
	GetEntries(ctx context.Context, giveawayID string) ([]string, error)

	MarkEnded(ctx context.Context, giveawayID string) (bool, error)
	AppendWinners(ctx context.Context, giveawayID string, winners []string) error
}
