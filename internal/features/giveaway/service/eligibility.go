package service

import (
	"fmt"
	"time"

	"giveaway-bot-backend/internal/features/giveaway/models"
	membermodels "giveaway-bot-backend/internal/features/member/models"
)

// EligibilityResult is the outcome of evaluating a member against a
// giveaway's requirements. An ineligible result is not an error; Reason
// names the first unmet requirement.
type EligibilityResult struct {
	Eligible bool
	Reason   string
}

func eligible() EligibilityResult {
	return EligibilityResult{Eligible: true}
}

func ineligible(reason string) EligibilityResult {
	return EligibilityResult{Eligible: false, Reason: reason}
}

// EvaluateEligibility checks the member against each requirement in a fixed
// order (roles, level, messages, account age, server age, invites) and stops
// at the first failure, so the reported reason is deterministic. A nil
// snapshot is treated as a member with zero stats. Pure function.
func EvaluateEligibility(reqs models.Requirements, roles []string, snapshot *membermodels.Snapshot, now time.Time) EligibilityResult {
	if snapshot == nil {
		snapshot = &membermodels.Snapshot{}
	}

	if len(reqs.RequiredRoles) > 0 && !holdsAny(roles, reqs.RequiredRoles) {
		return ineligible("you are missing a required role")
	}

	if reqs.MinLevel > 0 && snapshot.Level < reqs.MinLevel {
		return ineligible(fmt.Sprintf("you need to be at least level %d (you are level %d)", reqs.MinLevel, snapshot.Level))
	}

	if reqs.MinMessages > 0 && snapshot.TotalMessages < reqs.MinMessages {
		return ineligible(fmt.Sprintf("you need at least %d messages (you have %d)", reqs.MinMessages, snapshot.TotalMessages))
	}

	if reqs.MinAccountAgeDays > 0 && wholeDays(snapshot.AccountCreatedAt, now) < reqs.MinAccountAgeDays {
		return ineligible(fmt.Sprintf("your account must be at least %d day(s) old", reqs.MinAccountAgeDays))
	}

	if reqs.MinServerAgeDays > 0 && wholeDays(snapshot.GuildJoinedAt, now) < reqs.MinServerAgeDays {
		return ineligible(fmt.Sprintf("you must be a member of this server for at least %d day(s)", reqs.MinServerAgeDays))
	}

	if reqs.MinInvites > 0 && snapshot.TotalInvites < reqs.MinInvites {
		return ineligible(fmt.Sprintf("you need at least %d invite(s) (you have %d)", reqs.MinInvites, snapshot.TotalInvites))
	}

	return eligible()
}

func holdsAny(roles, required []string) bool {
	held := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		held[r] = struct{}{}
	}
	for _, r := range required {
		if _, ok := held[r]; ok {
			return true
		}
	}
	return false
}

// wholeDays returns floor((now - t) / 24h); a zero or future t counts as 0.
func wholeDays(t, now time.Time) int {
	if t.IsZero() || t.After(now) {
		return 0
	}
	return int(now.Sub(t).Hours() / 24)
}
