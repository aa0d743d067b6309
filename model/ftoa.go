package model

import "strconv"

// ftoa formats f with the minimal number of digits that round-trips exactly.
func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
