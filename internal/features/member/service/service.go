package service

import (
	"context"
	"errors"
	"time"

	"giveaway-bot-backend/internal/common/logger"
	"giveaway-bot-backend/internal/features/member/models"
	"giveaway-bot-backend/internal/features/member/repository"
	"giveaway-bot-backend/internal/utils/snowflake"
)

// Gateway is the slice of the chat platform client the member service needs.
type Gateway interface {
	MemberRoles(ctx context.Context, guildID, userID string) ([]string, error)
	MemberJoinedAt(ctx context.Context, guildID, userID string) (time.Time, error)
	DirectMessage(ctx context.Context, userID, text string) error
}

// MemberService resolves member snapshots for eligibility evaluation and
// applies reward side effects.
type MemberService interface {
	GetSnapshot(ctx context.Context, guildID, userID string) (*models.Snapshot, error)
	GetRoles(ctx context.Context, guildID, userID string) ([]string, error)
	RecordMessage(ctx context.Context, guildID, userID string) error
	AddInvites(ctx context.Context, guildID, userID string, regular, bonus int) error
	IncrementGiveawaysWon(ctx context.Context, guildID, userID string) error
	NotifyDirect(ctx context.Context, userID, text string) error
}

type memberService struct {
	stats   repository.StatsRepository
	gateway Gateway
}

func NewMemberService(stats repository.StatsRepository, gateway Gateway) MemberService {
	return &memberService{
		stats:   stats,
		gateway: gateway,
	}
}

// GetSnapshot merges stored engagement stats with live gateway facts. A
// member without a stats record gets zero counters rather than an error.
func (s *memberService) GetSnapshot(ctx context.Context, guildID, userID string) (*models.Snapshot, error) {
	snapshot := &models.Snapshot{
		AccountCreatedAt: snowflake.CreationTime(userID),
	}

	stats, err := s.stats.GetStats(ctx, guildID, userID)
	if err != nil && !errors.Is(err, repository.ErrMemberNotFound) {
		return nil, err
	}
	if stats != nil {
		snapshot.Level = stats.Level
		snapshot.TotalMessages = stats.TotalMessages
		snapshot.TotalInvites = stats.TotalInvites()
	}

	joinedAt, err := s.gateway.MemberJoinedAt(ctx, guildID, userID)
	if err != nil {
		logger.Debug().
			Str("guild_id", guildID).
			Str("user_id", userID).
			Err(err).
			Msg("Failed to resolve join time, treating as just joined")
	} else {
		snapshot.GuildJoinedAt = joinedAt
	}

	return snapshot, nil
}

func (s *memberService) GetRoles(ctx context.Context, guildID, userID string) ([]string, error) {
	return s.gateway.MemberRoles(ctx, guildID, userID)
}

func (s *memberService) RecordMessage(ctx context.Context, guildID, userID string) error {
	return s.stats.IncrementMessages(ctx, guildID, userID)
}

func (s *memberService) AddInvites(ctx context.Context, guildID, userID string, regular, bonus int) error {
	return s.stats.AddInvites(ctx, guildID, userID, regular, bonus)
}

func (s *memberService) IncrementGiveawaysWon(ctx context.Context, guildID, userID string) error {
	return s.stats.IncrementGiveawaysWon(ctx, guildID, userID)
}

// NotifyDirect sends a DM. Failures are reported to the caller, which is
// expected to treat them as best-effort.
func (s *memberService) NotifyDirect(ctx context.Context, userID, text string) error {
	return s.gateway.DirectMessage(ctx, userID, text)
}
