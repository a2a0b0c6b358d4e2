package models

import "fmt"

// Requirements is the fixed set of entry constraints a giveaway may carry.
// A zero value (or empty role list) means the constraint is not applied.
type Requirements struct {
	RequiredRoles     []string `json:"required_roles,omitempty"`
	MinLevel          int      `json:"min_level,omitempty"`
	MinMessages       int64    `json:"min_messages,omitempty"`
	MinAccountAgeDays int      `json:"min_account_age_days,omitempty"`
	MinServerAgeDays  int      `json:"min_server_age_days,omitempty"`
	MinInvites        int      `json:"min_invites,omitempty"`
}

// IsZero reports whether no constraint is set at all.
func (r *Requirements) IsZero() bool {
	return len(r.RequiredRoles) == 0 &&
		r.MinLevel == 0 &&
		r.MinMessages == 0 &&
		r.MinAccountAgeDays == 0 &&
		r.MinServerAgeDays == 0 &&
		r.MinInvites == 0
}

// Validate rejects negative thresholds and blank role IDs.
func (r *Requirements) Validate() error {
	if r.MinLevel < 0 {
		return fmt.Errorf("min_level must not be negative")
	}
	if r.MinMessages < 0 {
		return fmt.Errorf("min_messages must not be negative")
	}
	if r.MinAccountAgeDays < 0 {
		return fmt.Errorf("min_account_age_days must not be negative")
	}
	if r.MinServerAgeDays < 0 {
		return fmt.Errorf("min_server_age_days must not be negative")
	}
	if r.MinInvites < 0 {
		return fmt.Errorf("min_invites must not be negative")
	}
	for _, role := range r.RequiredRoles {
		if role == "" {
			return fmt.Errorf("required role id must not be empty")
		}
	}
	return nil
}

// Summary renders one human-readable line per active constraint, in check
// order, for the announcement view.
func (r *Requirements) Summary() []string {
	var lines []string
	if len(r.RequiredRoles) > 0 {
		lines = append(lines, fmt.Sprintf("Hold one of %d required role(s)", len(r.RequiredRoles)))
	}
	if r.MinLevel > 0 {
		lines = append(lines, fmt.Sprintf("Level %d or higher", r.MinLevel))
	}
	if r.MinMessages > 0 {
		lines = append(lines, fmt.Sprintf("At least %d messages sent", r.MinMessages))
	}
	if r.MinAccountAgeDays > 0 {
		lines = append(lines, fmt.Sprintf("Account at least %d day(s) old", r.MinAccountAgeDays))
	}
	if r.MinServerAgeDays > 0 {
		lines = append(lines, fmt.Sprintf("Server member for at least %d day(s)", r.MinServerAgeDays))
	}
	if r.MinInvites > 0 {
		lines = append(lines, fmt.Sprintf("At least %d invites", r.MinInvites))
	}
	return lines
}
