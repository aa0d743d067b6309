package decoder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DavidKarlas/libosmium/internal/decoder"
	"github.com/DavidKarlas/libosmium/model"
)

func TestDecodeHeaderBasic(t *testing.T) {
	var b []byte
	b = stringField(b, 4, "OsmSchema-V0.6")
	b = stringField(b, 4, "DenseNodes")
	b = stringField(b, 16, "test-writer")
	b = stringField(b, 17, "test-source")
	b = varintField(b, 32, uint64(1700000000))

	h, err := decoder.DecodeHeader(b)
	require.NoError(t, err)
	assert.True(t, h.HasDenseNodes)
	assert.False(t, h.MultipleObjectVersions)
	assert.Equal(t, "test-writer", h.Generator)
	assert.Equal(t, "test-source", h.Attributes[model.AttrSource])
	assert.Equal(t, model.Timestamp(1700000000).String(), h.Attributes[model.AttrOsmosisReplicationTimestamp])
}

func TestDecodeHeaderHistoricalInformation(t *testing.T) {
	var b []byte
	b = stringField(b, 4, "OsmSchema-V0.6")
	b = stringField(b, 4, "HistoricalInformation")

	h, err := decoder.DecodeHeader(b)
	require.NoError(t, err)
	assert.True(t, h.MultipleObjectVersions)
}

func TestDecodeHeaderUnsupportedRequiredFeature(t *testing.T) {
	var b []byte
	b = stringField(b, 4, "OsmSchema-V0.6")
	b = stringField(b, 4, "LocationsOnWays")

	_, err := decoder.DecodeHeader(b)
	assert.ErrorIs(t, err, decoder.ErrUnsupportedFeature)
}

func TestDecodeHeaderBbox(t *testing.T) {
	var box []byte
	box = zigzagField(box, 1, -1_800_000_000)
	box = zigzagField(box, 2, 1_800_000_000)
	box = zigzagField(box, 3, 900_000_000)
	box = zigzagField(box, 4, -900_000_000)

	var b []byte
	b = bytesField(b, 1, box)

	h, err := decoder.DecodeHeader(b)
	require.NoError(t, err)
	require.Len(t, h.BoundingBoxes, 1)
}
