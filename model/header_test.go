package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DavidKarlas/libosmium/model"
)

func TestHeaderAttr(t *testing.T) {
	h := model.Header{
		Generator: "osmium/1.14.0",
		Attributes: map[string]string{
			model.AttrOsmosisReplicationSequenceNumber: "4221",
		},
	}

	v, ok := h.Attr(model.AttrOsmosisReplicationSequenceNumber)
	assert.True(t, ok)
	assert.Equal(t, "4221", v)

	_, ok = h.Attr(model.AttrOsmosisReplicationBaseURL)
	assert.False(t, ok)
}
