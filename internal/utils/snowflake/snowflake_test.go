package snowflake

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCreationTime(t *testing.T) {
	// Snowflake with a zero timestamp part decodes to the Discord epoch.
	assert.Equal(t, time.UnixMilli(1420070400000).UTC(), CreationTime("0"))

	// One second past the epoch: 1000ms << 22.
	id := "4194304000"
	assert.Equal(t, time.UnixMilli(1420070401000).UTC(), CreationTime(id))

	assert.True(t, CreationTime("not-a-number").IsZero())
	assert.True(t, CreationTime("").IsZero())
}
