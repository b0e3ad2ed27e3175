// Package compat decides whether an ordered set of uploaded CPLs can be
// combined into one pod.
//
// Validation never fails with an error: every violation accumulates into an
// ordered, human-readable list intended for direct display, one line per
// remediable problem. Rule order is fixed so repeated runs over the same set
// report identically.
package compat

import (
	"fmt"
	"strings"

	"adpod/internal/pod"
)

// MaxCPLs is the upper bound on CPLs per pod.
const MaxCPLs = 20

// Result is the outcome of a compatibility check. Valid is true iff Errors
// is empty.
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// Validate checks the mutual compatibility of the uploaded CPL set.
//
// An empty set short-circuits with a single error. Otherwise every rule
// runs: the count cap, duplicate UUID detection across the whole set, and
// per-CPL checks (encryption, edit rate, aspect, empty reels) against
// reference values taken from the first CPL. The first CPL defines the
// reference, so it can never itself mismatch on rate or aspect.
func Validate(cpls []pod.UploadedCPL) Result {
	if len(cpls) == 0 {
		return Result{Valid: false, Errors: []string{"No CPLs provided"}}
	}

	var errs []string

	if len(cpls) > MaxCPLs {
		errs = append(errs, fmt.Sprintf("Maximum of %d CPLs allowed per pod", MaxCPLs))
	}

	if duplicates := duplicateUUIDs(cpls); len(duplicates) > 0 {
		errs = append(errs, fmt.Sprintf("Duplicate CPL UUIDs found: %s", strings.Join(duplicates, ", ")))
	}

	reference := cpls[0].Metadata

	for i, uploaded := range cpls {
		meta := uploaded.Metadata
		label := fmt.Sprintf("CPL %d (%s)", i+1, meta.ContentTitle)

		if meta.Encrypted {
			errs = append(errs, fmt.Sprintf("%s: CPL is encrypted. Only unencrypted CPLs are supported.", label))
		}
		if meta.EditRate != reference.EditRate {
			errs = append(errs, fmt.Sprintf("%s: Edit rate mismatch. Expected %s, got %s", label, reference.EditRate, meta.EditRate))
		}
		if meta.Aspect != reference.Aspect {
			errs = append(errs, fmt.Sprintf("%s: Aspect ratio mismatch. Expected %s, got %s", label, reference.Aspect, meta.Aspect))
		}
		if len(meta.Reels) == 0 {
			errs = append(errs, fmt.Sprintf("%s: No reels found in CPL", label))
		}
	}

	return Result{Valid: len(errs) == 0, Errors: errs}
}

// duplicateUUIDs returns every UUID occurrence beyond its first, in offset
// order. A UUID appearing three times is therefore listed twice.
func duplicateUUIDs(cpls []pod.UploadedCPL) []string {
	firstSeen := make(map[string]int, len(cpls))
	var duplicates []string
	for i, uploaded := range cpls {
		uuid := uploaded.Metadata.UUID
		if _, ok := firstSeen[uuid]; ok {
			duplicates = append(duplicates, uuid)
			continue
		}
		firstSeen[uuid] = i
	}
	return duplicates
}
