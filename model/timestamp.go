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

import "time"

// Timestamp is a point in time, expressed as seconds since the Unix epoch,
// matching the width and semantics of the timestamp field on a PBF entity.
type Timestamp uint32

// TimestampFromTime truncates t to whole seconds since the epoch.
func TimestampFromTime(t time.Time) Timestamp {
	return Timestamp(t.Unix())
}

// Time returns ts as a UTC time.Time.
func (ts Timestamp) Time() time.Time {
	return time.Unix(int64(ts), 0).UTC()
}

// String renders ts as an ISO-8601 UTC timestamp.
func (ts Timestamp) String() string {
	return ts.Time().Format("2006-01-02T15:04:05Z")
}

// ParseTimestamp parses an ISO-8601 UTC timestamp of the form produced by
// String.
func ParseTimestamp(s string) (Timestamp, error) {
	t, err := time.Parse("2006-01-02T15:04:05Z", s)
	if err != nil {
		return 0, err
	}

	return TimestampFromTime(t), nil
}

// TimestampFromPBF converts a delta-decoded PBF timestamp (in units of
// dateGranularity milliseconds) into a Timestamp.
func TimestampFromPBF(raw int64, dateGranularity int32) Timestamp {
	return Timestamp(raw * int64(dateGranularity) / 1000)
}
