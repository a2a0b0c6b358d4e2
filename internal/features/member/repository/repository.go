package repository

import (
	"context"
	"errors"

	"giveaway-bot-backend/internal/features/member/models"
)

var ErrMemberNotFound = errors.New("member not found")

// StatsRepository persists per-guild member engagement counters.
type StatsRepository interface {
	GetStats(ctx context.Context, guildID, userID string) (*models.Stats, error)
	SaveStats(ctx context.Context, stats *models.Stats) error
	IncrementMessages(ctx context.Context, guildID, userID string) error
	SetLevel(ctx context.Context, guildID, userID string, level int) error
	AddInvites(ctx context.Context, guildID, userID string, regular, bonus int) error
	IncrementGiveawaysWon(ctx context.Context, guildID, userID string) error
}
