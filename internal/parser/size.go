// Package parser converts the text output of each external command
// into typed records. Every parser here is total: it accepts any byte
// string and returns either a valid record or a sentinel value: it
// never errors out and never panics on malformed input.
package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// SizeUnknown is the sentinel returned when a size string carries an
// unrecognized unit suffix.
const SizeUnknown int64 = -1

var sizeRe = regexp.MustCompile(`^([0-9]*\.?[0-9]+)\s*([A-Za-z]*)$`)

var siMultiplier = map[string]int64{
	"":  1,
	"K": 1000,
	"M": 1000 * 1000,
	"G": 1000 * 1000 * 1000,
	"T": 1000 * 1000 * 1000 * 1000,
}

var binaryMultiplier = map[string]int64{
	"Ki": 1024,
	"Mi": 1024 * 1024,
	"Gi": 1024 * 1024 * 1024,
	"Ti": 1024 * 1024 * 1024 * 1024,
}

// ParseSize converts a human-readable size string such as "1.5G" or
// "1024Ki" into a byte count. SI suffixes (K, M, G, T) are powers of
// 1000; binary suffixes (Ki, Mi, Gi, Ti) are powers of 1024. An
// unrecognized unit returns SizeUnknown rather than an error.
func ParseSize(s string) int64 {
	s = strings.TrimSpace(s)
	matches := sizeRe.FindStringSubmatch(s)
	if matches == nil {
		return SizeUnknown
	}
	value, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return SizeUnknown
	}
	unit := matches[2]

	if mult, ok := binaryMultiplier[unit]; ok {
		return int64(value * float64(mult))
	}
	if mult, ok := siMultiplier[unit]; ok {
		return int64(value * float64(mult))
	}
	return SizeUnknown
}
