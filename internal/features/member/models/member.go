package models

import "time"

// Stats is the persisted engagement record of a guild member. It is written
// by the leveling and invite bookkeeping paths and read for eligibility
// evaluation and profile views.
type Stats struct {
	GuildID        string    `json:"guild_id"`
	UserID         string    `json:"user_id"`
	Level          int       `json:"level"`
	TotalMessages  int64     `json:"total_messages"`
	RegularInvites int       `json:"regular_invites"`
	BonusInvites   int       `json:"bonus_invites"`
	GiveawaysWon   int       `json:"giveaways_won"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TotalInvites is the invite count used for gating special giveaways.
func (s *Stats) TotalInvites() int {
	return s.RegularInvites + s.BonusInvites
}

// Snapshot is a point-in-time view of a member combining stored engagement
// stats with live gateway facts. It is read-only input to eligibility
// evaluation; a missing member yields the zero snapshot.
type Snapshot struct {
	Level            int       `json:"level"`
	TotalMessages    int64     `json:"total_messages"`
	AccountCreatedAt time.Time `json:"account_created_at"`
	GuildJoinedAt    time.Time `json:"guild_joined_at"`
	TotalInvites     int       `json:"total_invites"`
}
