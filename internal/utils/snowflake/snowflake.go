package snowflake

import (
	"strconv"
	"time"
)

// Discord epoch: first second of 2015, in milliseconds.
const epoch int64 = 1420070400000

// CreationTime extracts the account creation time encoded in a snowflake ID.
// An unparsable ID yields the zero time.
func CreationTime(id string) time.Time {
	v, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return time.Time{}
	}
	ms := int64(v>>22) + epoch
	return time.UnixMilli(ms).UTC()
}
