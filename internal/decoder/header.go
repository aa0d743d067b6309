// Copyright 2017-25 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package decoder

import (
	"fmt"

	"github.com/DavidKarlas/libosmium/internal/pb"
	"github.com/DavidKarlas/libosmium/model"
)

// DecodeHeader parses a decompressed HeaderBlock payload into a
// model.Header.
func DecodeHeader(raw []byte) (model.Header, error) {
	hb, err := pb.UnmarshalHeaderBlock(raw)
	if err != nil {
		return model.Header{}, fmt.Errorf("unmarshalling header block: %w", err)
	}

	h := model.Header{
		RequiredFeatures: hb.RequiredFeatures,
		OptionalFeatures: hb.OptionalFeatures,
		Attributes:       map[string]string{},
	}

	for _, f := range hb.RequiredFeatures {
		switch f {
		case "OsmSchema-V0.6":
			// Accepted silently: this decoder implements no other schema.
		case "DenseNodes":
			h.HasDenseNodes = true
		case "HistoricalInformation":
			h.MultipleObjectVersions = true
		default:
			return model.Header{}, fmt.Errorf("%w: %q", ErrUnsupportedFeature, f)
		}
	}

	if hb.Writingprogram != nil {
		h.Generator = *hb.Writingprogram
	}

	if hb.Source != nil {
		h.Attributes[model.AttrSource] = *hb.Source
	}

	if hb.Bbox != nil {
		h.BoundingBoxes = []*model.BoundingBox{
			model.BoundingBoxFromPBF(hb.Bbox.Left, hb.Bbox.Right, hb.Bbox.Top, hb.Bbox.Bottom),
		}
	}

	if hb.OsmosisReplicationTimestamp != nil {
		h.Attributes[model.AttrOsmosisReplicationTimestamp] = model.Timestamp(*hb.OsmosisReplicationTimestamp).String()
	}

	if hb.OsmosisReplicationSequenceNumber != nil {
		h.Attributes[model.AttrOsmosisReplicationSequenceNumber] = fmt.Sprintf("%d", *hb.OsmosisReplicationSequenceNumber)
	}

	if hb.OsmosisReplicationBaseUrl != nil {
		h.Attributes[model.AttrOsmosisReplicationBaseURL] = *hb.OsmosisReplicationBaseUrl
	}

	return h, nil
}
