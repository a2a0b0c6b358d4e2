package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"giveaway-bot-backend/internal/features/giveaway/models"
	membermodels "giveaway-bot-backend/internal/features/member/models"
)

func TestEvaluateEligibilityNoRequirements(t *testing.T) {
	result := EvaluateEligibility(models.Requirements{}, nil, nil, time.Now())
	assert.True(t, result.Eligible)
	assert.Empty(t, result.Reason)
}

func TestEvaluateEligibilityChecks(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	snapshot := &membermodels.Snapshot{
		Level:            5,
		TotalMessages:    200,
		AccountCreatedAt: now.AddDate(0, 0, -100),
		GuildJoinedAt:    now.AddDate(0, 0, -10),
		TotalInvites:     3,
	}
	roles := []string{"role-a", "role-b"}

	tests := []struct {
		name         string
		reqs         models.Requirements
		wantEligible bool
		wantReason   string
	}{
		{
			name:         "all satisfied",
			reqs:         models.Requirements{RequiredRoles: []string{"role-b"}, MinLevel: 5, MinMessages: 200, MinAccountAgeDays: 100, MinServerAgeDays: 10, MinInvites: 3},
			wantEligible: true,
		},
		{
			name:       "missing role",
			reqs:       models.Requirements{RequiredRoles: []string{"role-x"}},
			wantReason: "missing a required role",
		},
		{
			name:         "any of several roles suffices",
			reqs:         models.Requirements{RequiredRoles: []string{"role-x", "role-a"}},
			wantEligible: true,
		},
		{
			name:       "level too low",
			reqs:       models.Requirements{MinLevel: 6},
			wantReason: "level 6",
		},
		{
			name:       "too few messages",
			reqs:       models.Requirements{MinMessages: 201},
			wantReason: "201 messages",
		},
		{
			name:       "account too young",
			reqs:       models.Requirements{MinAccountAgeDays: 101},
			wantReason: "account must be at least 101",
		},
		{
			name:       "joined too recently",
			reqs:       models.Requirements{MinServerAgeDays: 11},
			wantReason: "member of this server",
		},
		{
			name:       "too few invites",
			reqs:       models.Requirements{MinInvites: 4},
			wantReason: "4 invite",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EvaluateEligibility(tt.reqs, roles, snapshot, now)
			assert.Equal(t, tt.wantEligible, result.Eligible)
			if tt.wantReason != "" {
				assert.Contains(t, result.Reason, tt.wantReason)
			}
		})
	}
}

// The reported reason must be the first failed check in the fixed order,
// not an arbitrary one.
func TestEvaluateEligibilityShortCircuitOrder(t *testing.T) {
	now := time.Now().UTC()
	reqs := models.Requirements{
		RequiredRoles: []string{"role-x"},
		MinLevel:      10,
		MinMessages:   1000,
	}

	// Fails everything: the role reason wins.
	result := EvaluateEligibility(reqs, nil, &membermodels.Snapshot{}, now)
	assert.False(t, result.Eligible)
	assert.Contains(t, result.Reason, "role")

	// Role held, still underleveled: the level reason comes next.
	result = EvaluateEligibility(reqs, []string{"role-x"}, &membermodels.Snapshot{}, now)
	assert.False(t, result.Eligible)
	assert.Contains(t, result.Reason, "level")
}

func TestEvaluateEligibilityNilSnapshot(t *testing.T) {
	reqs := models.Requirements{MinMessages: 1}
	result := EvaluateEligibility(reqs, nil, nil, time.Now())
	assert.False(t, result.Eligible)
}

func TestEvaluateEligibilityDayBoundaries(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	reqs := models.Requirements{MinAccountAgeDays: 7}

	// 6 days and 23 hours is still 6 whole days.
	almost := &membermodels.Snapshot{AccountCreatedAt: now.Add(-(6*24 + 23) * time.Hour)}
	assert.False(t, EvaluateEligibility(reqs, nil, almost, now).Eligible)

	exact := &membermodels.Snapshot{AccountCreatedAt: now.AddDate(0, 0, -7)}
	assert.True(t, EvaluateEligibility(reqs, nil, exact, now).Eligible)

	// Zero join time counts as zero days of membership.
	joined := models.Requirements{MinServerAgeDays: 1}
	assert.False(t, EvaluateEligibility(joined, nil, &membermodels.Snapshot{}, now).Eligible)
}
