package models

import (
	"errors"
	"time"
)

var (
	ErrGiveawayEnded    = errors.New("giveaway has already ended")
	ErrGiveawayNotEnded = errors.New("giveaway has not ended yet")
	ErrEmptyRerollPool  = errors.New("no entrants left to reroll from")
)

const (
	// Winner count bounds applied at creation time.
	MinWinners = 1
	MaxWinners = 10
)

// Giveaway is the central record of the subsystem. Entries and WinnerIDs
// live in their own Redis structures and are attached by the repository on
// read; everything else is stored as one JSON document.
type Giveaway struct {
	ID          string `json:"id"`
	GuildID     string `json:"guild_id"`
	ChannelID   string `json:"channel_id"`
	MessageID   string `json:"message_id"`
	Prize       string `json:"prize"`
	Description string `json:"description,omitempty"`
	HostID      string `json:"host_id"`
	HostName    string `json:"host_name"`

	WinnersCount int `json:"winners_count"`

	StartedAt time.Time `json:"started_at"`
	EndsAt    time.Time `json:"ends_at"`
	Ended     bool      `json:"ended"`

	Requirements Requirements `json:"requirements"`

	// Role ID -> extra entry weight. Declared for forward compatibility but
	// never consulted by winner selection.
	BonusEntries map[string]int `json:"bonus_entries,omitempty"`

	// Entry order is insertion order; selection ignores it.
	Entries   []string `json:"entries"`
	WinnerIDs []string `json:"winner_ids"`
}

// ClampWinnersCount forces n into [MinWinners, MaxWinners].
func ClampWinnersCount(n int) int {
	if n < MinWinners {
		return MinWinners
	}
	if n > MaxWinners {
		return MaxWinners
	}
	return n
}

// IsDue reports whether an active giveaway is past its end time.
func (g *Giveaway) IsDue(now time.Time) bool {
	return !g.Ended && !now.Before(g.EndsAt)
}

// HasEntered reports whether the user is currently in the entry set.
func (g *Giveaway) HasEntered(userID string) bool {
	for _, id := range g.Entries {
		if id == userID {
			return true
		}
	}
	return false
}

// RerollPool returns the entrants who have not won yet, preserving entry
// order. Returns an empty slice when everyone already won.
func (g *Giveaway) RerollPool() []string {
	won := make(map[string]struct{}, len(g.WinnerIDs))
	for _, id := range g.WinnerIDs {
		won[id] = struct{}{}
	}

	pool := make([]string, 0, len(g.Entries))
	for _, id := range g.Entries {
		if _, ok := won[id]; !ok {
			pool = append(pool, id)
		}
	}
	return pool
}

// GiveawayCreate carries the parameters of a create command. Duration is the
// raw user-supplied string ("10m", "2h", "7d") and is parsed and bounded by
// the service.
type GiveawayCreate struct {
	GuildID      string       `json:"guild_id" binding:"required"`
	ChannelID    string       `json:"channel_id" binding:"required"`
	HostID       string       `json:"host_id" binding:"required"`
	HostName     string       `json:"host_name"`
	Prize        string       `json:"prize" binding:"required,min=1,max=256"`
	Description  string       `json:"description" binding:"max=1000"`
	Duration     string       `json:"duration" binding:"required"`
	WinnersCount int          `json:"winners_count" binding:"required,min=1"`
	Requirements Requirements `json:"requirements"`
}

// GiveawayResponse is the API view of a giveaway.
type GiveawayResponse struct {
	ID           string       `json:"id"`
	GuildID      string       `json:"guild_id"`
	ChannelID    string       `json:"channel_id"`
	MessageID    string       `json:"message_id"`
	Prize        string       `json:"prize"`
	Description  string       `json:"description,omitempty"`
	HostID       string       `json:"host_id"`
	HostName     string       `json:"host_name"`
	WinnersCount int          `json:"winners_count"`
	StartedAt    time.Time    `json:"started_at"`
	EndsAt       time.Time    `json:"ends_at"`
	Ended        bool         `json:"ended"`
	Requirements Requirements `json:"requirements"`
	EntriesCount int          `json:"entries_count"`
	Entries      []string     `json:"entries,omitempty"`
	WinnerIDs    []string     `json:"winner_ids,omitempty"`
}

// EntryResult is the outcome of an entry toggle.
type EntryResult struct {
	Entered      bool   `json:"entered"`
	TotalEntries int    `json:"total_entries"`
	Denied       bool   `json:"denied,omitempty"`
	Reason       string `json:"reason,omitempty"`
}

// EndResult is the outcome of ending a giveaway.
type EndResult struct {
	GiveawayID   string   `json:"giveaway_id"`
	WinnerIDs    []string `json:"winner_ids"`
	EntriesCount int      `json:"entries_count"`
	AlreadyEnded bool     `json:"already_ended,omitempty"`
}

// RerollResult is the outcome of a reroll.
type RerollResult struct {
	GiveawayID string   `json:"giveaway_id"`
	NewWinners []string `json:"new_winners"`
}

func (g *Giveaway) ToResponse() *GiveawayResponse {
	return &GiveawayResponse{
		ID:           g.ID,
		GuildID:      g.GuildID,
		ChannelID:    g.ChannelID,
		MessageID:    g.MessageID,
		Prize:        g.Prize,
		Description:  g.Description,
		HostID:       g.HostID,
		HostName:     g.HostName,
		WinnersCount: g.WinnersCount,
		StartedAt:    g.StartedAt,
		EndsAt:       g.EndsAt,
		Ended:        g.Ended,
		Requirements: g.Requirements,
		EntriesCount: len(g.Entries),
		Entries:      g.Entries,
		WinnerIDs:    g.WinnerIDs,
	}
}
