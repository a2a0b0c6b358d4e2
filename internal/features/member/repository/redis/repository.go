package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"giveaway-bot-backend/internal/features/member/models"
	"giveaway-bot-backend/internal/features/member/repository"
)

type redisStatsRepository struct {
	client *redis.Client
}

func NewRedisStatsRepository(client *redis.Client) repository.StatsRepository {
	return &redisStatsRepository{client: client}
}

const (
	fieldLevel          = "level"
	fieldTotalMessages  = "total_messages"
	fieldRegularInvites = "regular_invites"
	fieldBonusInvites   = "bonus_invites"
	fieldGiveawaysWon   = "giveaways_won"
	fieldUpdatedAt      = "updated_at"
)

func makeStatsKey(guildID, userID string) string {
	return fmt.Sprintf("member:%s:%s", guildID, userID)
}

func (r *redisStatsRepository) GetStats(ctx context.Context, guildID, userID string) (*models.Stats, error) {
	data, err := r.client.HGetAll(ctx, makeStatsKey(guildID, userID)).Result()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, repository.ErrMemberNotFound
	}

	stats := &models.Stats{
		GuildID: guildID,
		UserID:  userID,
	}
	stats.Level = parseInt(data[fieldLevel])
	stats.TotalMessages = int64(parseInt(data[fieldTotalMessages]))
	stats.RegularInvites = parseInt(data[fieldRegularInvites])
	stats.BonusInvites = parseInt(data[fieldBonusInvites])
	stats.GiveawaysWon = parseInt(data[fieldGiveawaysWon])
	if ts := parseInt(data[fieldUpdatedAt]); ts > 0 {
		stats.UpdatedAt = time.Unix(int64(ts), 0).UTC()
	}
	return stats, nil
}

func (r *redisStatsRepository) SaveStats(ctx context.Context, stats *models.Stats) error {
	return r.client.HSet(ctx, makeStatsKey(stats.GuildID, stats.UserID), map[string]interface{}{
		fieldLevel:          stats.Level,
		fieldTotalMessages:  stats.TotalMessages,
		fieldRegularInvites: stats.RegularInvites,
		fieldBonusInvites:   stats.BonusInvites,
		fieldGiveawaysWon:   stats.GiveawaysWon,
		fieldUpdatedAt:      time.Now().Unix(),
	}).Err()
}

func (r *redisStatsRepository) IncrementMessages(ctx context.Context, guildID, userID string) error {
	key := makeStatsKey(guildID, userID)
	pipe := r.client.Pipeline()
	pipe.HIncrBy(ctx, key, fieldTotalMessages, 1)
	pipe.HSet(ctx, key, fieldUpdatedAt, time.Now().Unix())
	_, err := pipe.Exec(ctx)
	return err
}

func (r *redisStatsRepository) SetLevel(ctx context.Context, guildID, userID string, level int) error {
	key := makeStatsKey(guildID, userID)
	pipe := r.client.Pipeline()
	pipe.HSet(ctx, key, fieldLevel, level)
	pipe.HSet(ctx, key, fieldUpdatedAt, time.Now().Unix())
	_, err := pipe.Exec(ctx)
	return err
}

func (r *redisStatsRepository) AddInvites(ctx context.Context, guildID, userID string, regular, bonus int) error {
	key := makeStatsKey(guildID, userID)
	pipe := r.client.Pipeline()
	if regular != 0 {
		pipe.HIncrBy(ctx, key, fieldRegularInvites, int64(regular))
	}
	if bonus != 0 {
		pipe.HIncrBy(ctx, key, fieldBonusInvites, int64(bonus))
	}
	pipe.HSet(ctx, key, fieldUpdatedAt, time.Now().Unix())
	_, err := pipe.Exec(ctx)
	return err
}

func (r *redisStatsRepository) IncrementGiveawaysWon(ctx context.Context, guildID, userID string) error {
	key := makeStatsKey(guildID, userID)
	pipe := r.client.Pipeline()
	pipe.HIncrBy(ctx, key, fieldGiveawaysWon, 1)
	pipe.HSet(ctx, key, fieldUpdatedAt, time.Now().Unix())
	_, err := pipe.Exec(ctx)
	return err
}

func parseInt(s string) int {
	if s == "" {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}
