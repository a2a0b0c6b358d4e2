package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"giveaway-bot-backend/internal/features/member/models"
	"giveaway-bot-backend/internal/features/member/repository"
)

type stubStatsRepo struct {
	mu    sync.Mutex
	stats map[string]*models.Stats
}

func newStubStatsRepo() *stubStatsRepo {
	return &stubStatsRepo{stats: make(map[string]*models.Stats)}
}

func (r *stubStatsRepo) key(guildID, userID string) string { return guildID + ":" + userID }

func (r *stubStatsRepo) GetStats(_ context.Context, guildID, userID string) (*models.Stats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stats[r.key(guildID, userID)]
	if !ok {
		return nil, repository.ErrMemberNotFound
	}
	return s, nil
}

func (r *stubStatsRepo) SaveStats(_ context.Context, stats *models.Stats) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stats[r.key(stats.GuildID, stats.UserID)] = stats
	return nil
}

func (r *stubStatsRepo) IncrementMessages(_ context.Context, guildID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.ensure(guildID, userID)
	s.TotalMessages++
	return nil
}

func (r *stubStatsRepo) SetLevel(_ context.Context, guildID, userID string, level int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensure(guildID, userID).Level = level
	return nil
}

func (r *stubStatsRepo) AddInvites(_ context.Context, guildID, userID string, regular, bonus int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.ensure(guildID, userID)
	s.RegularInvites += regular
	s.BonusInvites += bonus
	return nil
}

func (r *stubStatsRepo) IncrementGiveawaysWon(_ context.Context, guildID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensure(guildID, userID).GiveawaysWon++
	return nil
}

func (r *stubStatsRepo) ensure(guildID, userID string) *models.Stats {
	k := r.key(guildID, userID)
	if _, ok := r.stats[k]; !ok {
		r.stats[k] = &models.Stats{GuildID: guildID, UserID: userID}
	}
	return r.stats[k]
}

type stubGateway struct {
	roles     []string
	joinedAt  time.Time
	joinedErr error
	dms       []string
}

func (g *stubGateway) MemberRoles(context.Context, string, string) ([]string, error) {
	return g.roles, nil
}

func (g *stubGateway) MemberJoinedAt(context.Context, string, string) (time.Time, error) {
	if g.joinedErr != nil {
		return time.Time{}, g.joinedErr
	}
	return g.joinedAt, nil
}

func (g *stubGateway) DirectMessage(_ context.Context, userID, _ string) error {
	g.dms = append(g.dms, userID)
	return nil
}

// Snowflake for one second past the Discord epoch.
const testSnowflake = "4194304000"

func TestGetSnapshotMergesStatsAndGateway(t *testing.T) {
	repo := newStubStatsRepo()
	joined := time.Now().UTC().AddDate(0, 0, -30)
	gateway := &stubGateway{joinedAt: joined}
	svc := NewMemberService(repo, gateway)

	require.NoError(t, repo.SaveStats(context.Background(), &models.Stats{
		GuildID:        "guild-1",
		UserID:         testSnowflake,
		Level:          7,
		TotalMessages:  1234,
		RegularInvites: 2,
		BonusInvites:   1,
	}))

	snapshot, err := svc.GetSnapshot(context.Background(), "guild-1", testSnowflake)
	require.NoError(t, err)

	assert.Equal(t, 7, snapshot.Level)
	assert.Equal(t, int64(1234), snapshot.TotalMessages)
	assert.Equal(t, 3, snapshot.TotalInvites)
	assert.Equal(t, joined, snapshot.GuildJoinedAt)
	assert.Equal(t, time.UnixMilli(1420070401000).UTC(), snapshot.AccountCreatedAt)
}

func TestGetSnapshotUnknownMember(t *testing.T) {
	svc := NewMemberService(newStubStatsRepo(), &stubGateway{})

	snapshot, err := svc.GetSnapshot(context.Background(), "guild-1", testSnowflake)
	require.NoError(t, err)

	assert.Zero(t, snapshot.Level)
	assert.Zero(t, snapshot.TotalMessages)
	assert.Zero(t, snapshot.TotalInvites)
}

func TestGetSnapshotGatewayFailure(t *testing.T) {
	gateway := &stubGateway{joinedErr: errors.New("gateway down")}
	svc := NewMemberService(newStubStatsRepo(), gateway)

	snapshot, err := svc.GetSnapshot(context.Background(), "guild-1", testSnowflake)
	require.NoError(t, err)
	assert.True(t, snapshot.GuildJoinedAt.IsZero())
}

func TestRecordMessageAndRewards(t *testing.T) {
	repo := newStubStatsRepo()
	gateway := &stubGateway{}
	svc := NewMemberService(repo, gateway)

	ctx := context.Background()
	require.NoError(t, svc.RecordMessage(ctx, "guild-1", "user-1"))
	require.NoError(t, svc.RecordMessage(ctx, "guild-1", "user-1"))
	require.NoError(t, svc.AddInvites(ctx, "guild-1", "user-1", 2, 1))
	require.NoError(t, svc.IncrementGiveawaysWon(ctx, "guild-1", "user-1"))

	stats, err := repo.GetStats(ctx, "guild-1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalMessages)
	assert.Equal(t, 3, stats.TotalInvites())
	assert.Equal(t, 1, stats.GiveawaysWon)

	require.NoError(t, svc.NotifyDirect(ctx, "user-1", "hi"))
	assert.Equal(t, []string{"user-1"}, gateway.dms)
}
