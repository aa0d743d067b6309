package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DavidKarlas/libosmium/model"
)

func TestTimestampISORoundTrip(t *testing.T) {
	for _, ts := range []model.Timestamp{0, 1, 1000000000, 2147483647} {
		s := ts.String()

		got, err := model.ParseTimestamp(s)
		assert.NoError(t, err)
		assert.Equal(t, ts, got)
	}
}

func TestTimestampString(t *testing.T) {
	assert.Equal(t, "2001-09-09T01:46:40Z", model.Timestamp(1000000000).String())
}

func TestTimestampFromPBF(t *testing.T) {
	// date_granularity defaults to 1000 (ms); a raw value is already in
	// whole seconds once multiplied by granularity and divided by 1000.
	assert.Equal(t, model.Timestamp(1000000000), model.TimestampFromPBF(1000000000, 1000))
}
