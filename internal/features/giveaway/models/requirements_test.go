package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequirementsIsZero(t *testing.T) {
	var r Requirements
	assert.True(t, r.IsZero())

	r.MinLevel = 5
	assert.False(t, r.IsZero())

	r = Requirements{RequiredRoles: []string{"123"}}
	assert.False(t, r.IsZero())
}

func TestRequirementsValidate(t *testing.T) {
	tests := []struct {
		name    string
		reqs    Requirements
		wantErr bool
	}{
		{name: "zero value", reqs: Requirements{}},
		{name: "all positive", reqs: Requirements{MinLevel: 3, MinMessages: 100, MinAccountAgeDays: 7, MinServerAgeDays: 1, MinInvites: 2}},
		{name: "negative level", reqs: Requirements{MinLevel: -1}, wantErr: true},
		{name: "negative messages", reqs: Requirements{MinMessages: -10}, wantErr: true},
		{name: "negative account age", reqs: Requirements{MinAccountAgeDays: -1}, wantErr: true},
		{name: "negative server age", reqs: Requirements{MinServerAgeDays: -1}, wantErr: true},
		{name: "negative invites", reqs: Requirements{MinInvites: -1}, wantErr: true},
		{name: "blank role id", reqs: Requirements{RequiredRoles: []string{"123", ""}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.reqs.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRequirementsSummaryOrder(t *testing.T) {
	r := Requirements{
		RequiredRoles:     []string{"a", "b"},
		MinLevel:          5,
		MinMessages:       100,
		MinAccountAgeDays: 30,
		MinServerAgeDays:  7,
		MinInvites:        2,
	}

	lines := r.Summary()
	assert.Len(t, lines, 6)
	assert.Contains(t, lines[0], "role")
	assert.Contains(t, lines[1], "Level 5")
	assert.Contains(t, lines[2], "100 messages")
	assert.Contains(t, lines[3], "Account")
	assert.Contains(t, lines[4], "Server member")
	assert.Contains(t, lines[5], "invites")

	assert.Empty(t, (&Requirements{}).Summary())
}
