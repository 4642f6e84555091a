// Copyright 2026 The Tubeview Authors
// SPDX-License-Identifier: Apache-2.0

package youtube

import (
	"strconv"
	"strings"
)

// ParseDuration converts a colon-separated duration string ("M:SS" or
// "H:MM:SS") to a second count. Non-numeric components are dropped
// before the shape is checked, so "1:2a:03" is read from whatever
// numeric tokens remain. Anything that doesn't leave exactly two or
// three numeric tokens, including the empty string, yields 0.
func ParseDuration(text string) int {
	if text == "" {
		return 0
	}
	var parts []int
	for _, token := range strings.Split(text, ":") {
		value, err := strconv.Atoi(token)
		if err != nil {
			continue
		}
		parts = append(parts, value)
	}
	switch len(parts) {
	case 3:
		return parts[0]*3600 + parts[1]*60 + parts[2]
	case 2:
		return parts[0]*60 + parts[1]
	default:
		return 0
	}
}
