package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"giveaway-bot-backend/internal/features/giveaway/models"
	"giveaway-bot-backend/internal/features/giveaway/repository"
)

type redisRepository struct {
	client *redis.Client
}

const (
	keyPrefixGiveaway  = "giveaway:"
	keyActiveGiveaways = "giveaways:active"
	keyEndedGiveaways  = "giveaways:ended"
	keyPrefixGuild     = "giveaways:guild:"
	keyMessageIndex    = "giveaways:by_message"

	// How long a winning MarkEnded caller may hold the transition guard
	// before it expires. Bounds how long a crash mid-transition can delay
	// the giveaway being picked up again.
	endedGuardTimeout = 30 * time.Second
)

func NewRedisGiveawayRepository(client *redis.Client) repository.GiveawayRepository {
	return &redisRepository{client: client}
}

func makeGiveawayKey(id string) string {
	return keyPrefixGiveaway + id
}

func makeEntriesKey(id string) string {
	return keyPrefixGiveaway + id + ":entries"
}

func makeEntriesSetKey(id string) string {
	return keyPrefixGiveaway + id + ":entries_set"
}

func makeWinnersKey(id string) string {
	return keyPrefixGiveaway + id + ":winners"
}

func makeEndedGuardKey(id string) string {
	return keyPrefixGiveaway + id + ":ended_guard"
}

func makeGuildKey(guildID string) string {
	return keyPrefixGuild + guildID
}

func (r *redisRepository) Create(ctx context.Context, giveaway *models.Giveaway) error {
	data, err := json.Marshal(giveaway)
	if err != nil {
		return fmt.Errorf("failed to marshal giveaway: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, makeGiveawayKey(giveaway.ID), data, 0)
	pipe.SAdd(ctx, keyActiveGiveaways, giveaway.ID)
	pipe.SAdd(ctx, makeGuildKey(giveaway.GuildID), giveaway.ID)

	_, err = pipe.Exec(ctx)
	return err
}

func (r *redisRepository) SetMessageID(ctx context.Context, giveawayID, messageID string) error {
	giveaway, err := r.getRecord(ctx, giveawayID)
	if err != nil {
		return err
	}
	giveaway.MessageID = messageID

	data, err := json.Marshal(giveaway)
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, makeGiveawayKey(giveawayID), data, 0)
	pipe.HSet(ctx, keyMessageIndex, messageID, giveawayID)
	_, err = pipe.Exec(ctx)
	return err
}

// getRecord loads the bare JSON record without entries or winners.
func (r *redisRepository) getRecord(ctx context.Context, id string) (*models.Giveaway, error) {
	data, err := r.client.Get(ctx, makeGiveawayKey(id)).Bytes()
	if err == redis.Nil {
		return nil, repository.ErrGiveawayNotFound
	}
	if err != nil {
		return nil, err
	}

	var giveaway models.Giveaway
	if err := json.Unmarshal(data, &giveaway); err != nil {
		return nil, err
	}
	return &giveaway, nil
}

func (r *redisRepository) GetByID(ctx context.Context, id string) (*models.Giveaway, error) {
	giveaway, err := r.getRecord(ctx, id)
	if err != nil {
		return nil, err
	}

	entries, err := r.client.LRange(ctx, makeEntriesKey(id), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	giveaway.Entries = entries

	winners, err := r.client.LRange(ctx, makeWinnersKey(id), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	giveaway.WinnerIDs = winners

	return giveaway, nil
}

func (r *redisRepository) GetByMessageID(ctx context.Context, messageID string) (*models.Giveaway, error) {
	id, err := r.client.HGet(ctx, keyMessageIndex, messageID).Result()
	if err == redis.Nil {
		return nil, repository.ErrGiveawayNotFound
	}
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *redisRepository) GetEndedByMessageID(ctx context.Context, messageID string) (*models.Giveaway, error) {
	giveaway, err := r.GetByMessageID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if !giveaway.Ended {
		return nil, repository.ErrGiveawayNotFound
	}
	return giveaway, nil
}

func (r *redisRepository) GetByGuild(ctx context.Context, guildID string) ([]*models.Giveaway, error) {
	ids, err := r.client.SMembers(ctx, makeGuildKey(guildID)).Result()
	if err != nil {
		return nil, err
	}

	giveaways := make([]*models.Giveaway, 0, len(ids))
	for _, id := range ids {
		giveaway, err := r.GetByID(ctx, id)
		if err != nil {
			if err == repository.ErrGiveawayNotFound {
				continue
			}
			return nil, fmt.Errorf("failed to get giveaway %s: %w", id, err)
		}
		giveaways = append(giveaways, giveaway)
	}
	return giveaways, nil
}

func (r *redisRepository) GetActiveDueBy(ctx context.Context, now time.Time) ([]string, error) {
	ids, err := r.client.SMembers(ctx, keyActiveGiveaways).Result()
	if err != nil {
		return nil, err
	}

	var due []string
	for _, id := range ids {
		giveaway, err := r.getRecord(ctx, id)
		if err != nil {
			continue
		}
		if giveaway.IsDue(now) {
			due = append(due, id)
		}
	}
	return due, nil
}

func (r *redisRepository) AddEntry(ctx context.Context, giveawayID, userID string) (bool, int, error) {
	added, err := r.client.SAdd(ctx, makeEntriesSetKey(giveawayID), userID).Result()
	if err != nil {
		return false, 0, err
	}
	if added > 0 {
		if err := r.client.RPush(ctx, makeEntriesKey(giveawayID), userID).Err(); err != nil {
			return false, 0, err
		}
	}

	total, err := r.client.LLen(ctx, makeEntriesKey(giveawayID)).Result()
	if err != nil {
		return false, 0, err
	}
	return added > 0, int(total), nil
}

func (r *redisRepository) RemoveEntry(ctx context.Context, giveawayID, userID string) (bool, int, error) {
	removed, err := r.client.SRem(ctx, makeEntriesSetKey(giveawayID), userID).Result()
	if err != nil {
		return false, 0, err
	}
	if removed > 0 {
		if err := r.client.LRem(ctx, makeEntriesKey(giveawayID), 0, userID).Err(); err != nil {
			return false, 0, err
		}
	}

	total, err := r.client.LLen(ctx, makeEntriesKey(giveawayID)).Result()
	if err != nil {
		return false, 0, err
	}
	return removed > 0, int(total), nil
}

func (r *redisRepository) GetEntries(ctx context.Context, giveawayID string) ([]string, error) {
	return r.client.LRange(ctx, makeEntriesKey(giveawayID), 0, -1).Result()
}

// MarkEnded performs the Active -> Ended transition exactly once. The Ended
// flag on the record is the durable authority; the SETNX guard only closes
// the read-then-write race between the scheduler and a concurrent manual
// end. The guard carries a TTL and is released on every failure path, so a
// failed or crashed transition leaves the record Active and a later sweep
// retries it rather than observing a forever-held guard.
func (r *redisRepository) MarkEnded(ctx context.Context, giveawayID string) (bool, error) {
	giveaway, err := r.getRecord(ctx, giveawayID)
	if err != nil {
		return false, err
	}
	if giveaway.Ended {
		return false, nil
	}

	guardKey := makeEndedGuardKey(giveawayID)
	won, err := r.client.SetNX(ctx, guardKey, 1, endedGuardTimeout).Result()
	if err != nil {
		return false, err
	}
	if !won {
		return false, nil
	}

	giveaway.Ended = true
	data, err := json.Marshal(giveaway)
	if err != nil {
		r.client.Del(ctx, guardKey)
		return false, err
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, makeGiveawayKey(giveawayID), data, 0)
	pipe.SRem(ctx, keyActiveGiveaways, giveawayID)
	pipe.SAdd(ctx, keyEndedGiveaways, giveawayID)
	if _, err := pipe.Exec(ctx); err != nil {
		r.client.Del(ctx, guardKey)
		return false, err
	}
	return true, nil
}

func (r *redisRepository) AppendWinners(ctx context.Context, giveawayID string, winners []string) error {
	if len(winners) == 0 {
		return nil
	}
	args := make([]interface{}, len(winners))
	for i, w := range winners {
		args[i] = w
	}
	return r.client.RPush(ctx, makeWinnersKey(giveawayID), args...).Err()
}
