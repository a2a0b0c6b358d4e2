package models

import "time"

// GiveawayView is the presentation-neutral payload handed to the
// announcement renderer. The core never formats platform markup itself.
type GiveawayView struct {
	Prize               string
	Description         string
	HostName            string
	WinnersCount        int
	EntriesCount        int
	EndsAt              time.Time
	Ended               bool
	WinnerIDs           []string
	RequirementsSummary []string
}

// ToView builds the announcement view of the giveaway.
func (g *Giveaway) ToView() *GiveawayView {
	return &GiveawayView{
		Prize:               g.Prize,
		Description:         g.Description,
		HostName:            g.HostName,
		WinnersCount:        g.WinnersCount,
		EntriesCount:        len(g.Entries),
		EndsAt:              g.EndsAt,
		Ended:               g.Ended,
		WinnerIDs:           g.WinnerIDs,
		RequirementsSummary: g.Requirements.Summary(),
	}
}
