package core

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ParseID coerces an Id received as a number or a string into an int.
// Strings are read up to the first non-digit ("12abc" -> 12); ok is false when
// no digits lead the string or the value is not a whole number.
func ParseID(v interface{}) (id int, ok bool) {
	switch val := v.(type) {
	case int:
		return val, true
	case int64:
		return int(val), true
	case float64:
		if val != math.Trunc(val) || math.IsInf(val, 0) {
			return 0, false
		}
		return int(val), true
	case json.Number:
		return ParseID(string(val))
	case string:
		return parseLeadingInt(val)
	}
	return 0, false
}

func parseLeadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, false
	}
	id, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return id, true
}

// NextID returns max(ids) + 1, or 1 when ids is empty.
func NextID(ids ...int) int {
	var max int
	for _, id := range ids {
		if id > max {
			max = id
		}
	}
	return max + 1
}
