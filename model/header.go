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

package model

// Attribute keys folded into Header.Attributes for the Osmosis replication
// fields, which have no fixed structure beyond "a string value keyed by
// name" in the wire format.
const (
	AttrOsmosisReplicationTimestamp      = "osmosis_replication_timestamp"
	AttrOsmosisReplicationSequenceNumber = "osmosis_replication_sequence_number"
	AttrOsmosisReplicationBaseURL        = "osmosis_replication_base_url"
	AttrSource                           = "source"
)

// Header is the contents of the OSMHeader blob that precedes every PBF
// file's data blobs.
type Header struct {
	// Generator is the writingprogram field, renamed to match what it
	// actually records.
	Generator string

	// MultipleObjectVersions is true when the required feature
	// "HistoricalInformation" was present.
	MultipleObjectVersions bool

	// HasDenseNodes is true when the required feature "DenseNodes" was
	// present.
	HasDenseNodes bool

	// BoundingBoxes holds the file's declared bounding box, if any. A
	// slice rather than a single value so a future multi-extract header
	// (or a caller merging several Headers) has somewhere to put more
	// than one.
	BoundingBoxes []*BoundingBox

	RequiredFeatures []string
	OptionalFeatures []string

	// Attributes holds free-form string header metadata, namely the
	// osmosis_replication_* fields and source.
	Attributes map[string]string
}

// Attr returns a header attribute and whether it was present.
func (h Header) Attr(key string) (string, bool) {
	v, ok := h.Attributes[key]

	return v, ok
}
