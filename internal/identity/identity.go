// Package identity derives the deterministic pod name, short hash, and
// synthetic UUIDs for a pod configuration.
//
// The name doubles as the display identifier and file-naming token. The hash
// seeds every generated UUID and is invariant to CPL upload order (the hash
// input sorts CPL UUIDs), while stitched playback order still follows upload
// order. The hash reproduces the original compiler's signed 32-bit
// polynomial bit for bit so pod names and derived UUIDs stay stable across
// implementations.
package identity

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf16"

	"adpod/internal/pod"
)

// PodName formats the deterministic pod identifier:
// THEATREID_RATING_SECTION_ASPECT_dd-mmm-yyyy, with the rating hyphen
// stripped (PG-13 becomes PG13) and the aspect upper-cased.
func PodName(config pod.Configuration) string {
	rating := strings.Replace(string(config.Rating), "-", "", 1)
	return fmt.Sprintf("%s_%s_%s_%s_%s",
		config.TheatreID,
		rating,
		config.Section,
		strings.ToUpper(string(config.Aspect)),
		config.StartDate,
	)
}

// PodHash returns the 8-hex-digit pod hash. The input joins the identity
// fields and the sorted CPL UUIDs with pipes, making the result independent
// of upload order.
func PodHash(config pod.Configuration) string {
	uuids := make([]string, 0, len(config.CPLs))
	for _, uploaded := range config.CPLs {
		uuids = append(uuids, uploaded.Metadata.UUID)
	}
	sort.Strings(uuids)

	fields := []string{
		config.TheatreID,
		string(config.Rating),
		string(config.Section),
		string(config.Aspect),
		config.StartDate,
	}
	fields = append(fields, uuids...)

	return fmt.Sprintf("%08x", checksum(strings.Join(fields, "|")))
}

// PodUUID synthesizes the pod-level composition UUID from the pod hash.
func PodUUID(hash string) string {
	return fmt.Sprintf("urn:uuid:%s-0000-0000-0000-000000000000", hash)
}

// ReelUUID synthesizes the UUID for the nth stitched reel (1-based).
func ReelUUID(hash string, n int) string {
	return fmt.Sprintf("urn:uuid:%s-reel-%04d", hash, n)
}

// checksum is a rolling multiply-and-add hash over UTF-16 code units,
// wrapped to signed 32 bits, absolute value. Equivalent to
// hash = hash*31 + unit per step.
func checksum(input string) int64 {
	var hash int32
	for _, unit := range utf16.Encode([]rune(input)) {
		hash = hash*31 + int32(unit)
	}
	value := int64(hash)
	if value < 0 {
		value = -value
	}
	return value
}
