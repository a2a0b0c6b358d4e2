package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGiveawayDuration(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{name: "minutes", input: "10m", want: 10 * time.Minute},
		{name: "hours", input: "2h", want: 2 * time.Hour},
		{name: "compound", input: "1h30m", want: 90 * time.Minute},
		{name: "days suffix", input: "7d", want: 7 * 24 * time.Hour},
		{name: "fractional days", input: "1.5d", want: 36 * time.Hour},
		{name: "whitespace trimmed", input: " 5m ", want: 5 * time.Minute},
		{name: "lower bound inclusive", input: "1m", want: time.Minute},
		{name: "upper bound inclusive", input: "30d", want: 30 * 24 * time.Hour},
		{name: "below minimum", input: "30s", wantErr: true},
		{name: "above maximum", input: "31d", wantErr: true},
		{name: "zero", input: "0s", wantErr: true},
		{name: "negative", input: "-5m", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "soon", wantErr: true},
		{name: "garbage days", input: "xd", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseGiveawayDuration(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
