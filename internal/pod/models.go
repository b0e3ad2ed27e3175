package pod

import (
	"fmt"
	"strings"
	"time"

	"adpod/internal/cpl"
	"adpod/internal/poddate"
)

// Rating is the audience rating a pod is compiled for.
type Rating string

const (
	RatingG    Rating = "G"
	RatingPG   Rating = "PG"
	RatingPG13 Rating = "PG-13"
	RatingR    Rating = "R"
)

// Section identifies the playback slot the pod occupies.
type Section string

const (
	// SectionLPS plays before the lights dim.
	SectionLPS Section = "LPS"
	// SectionEPS plays after the lights dim, ahead of the feature.
	SectionEPS Section = "EPS"
)

// Status represents the lifecycle of a pod record.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusValidated Status = "validated"
	StatusGenerated Status = "generated"
	StatusFailed    Status = "failed"
)

var allStatuses = []Status{StatusDraft, StatusValidated, StatusGenerated, StatusFailed}

// KnownStatus reports whether value names a pod lifecycle status.
func KnownStatus(value Status) bool {
	for _, status := range allStatuses {
		if status == value {
			return true
		}
	}
	return false
}

// ParseRating resolves a user-entered rating token.
func ParseRating(value string) (Rating, error) {
	switch Rating(strings.ToUpper(strings.TrimSpace(value))) {
	case RatingG:
		return RatingG, nil
	case RatingPG:
		return RatingPG, nil
	case RatingPG13:
		return RatingPG13, nil
	case RatingR:
		return RatingR, nil
	}
	return "", fmt.Errorf("unknown rating %q (expected G, PG, PG-13, or R)", value)
}

// ParseSection resolves a user-entered section token.
func ParseSection(value string) (Section, error) {
	switch Section(strings.ToUpper(strings.TrimSpace(value))) {
	case SectionLPS:
		return SectionLPS, nil
	case SectionEPS:
		return SectionEPS, nil
	}
	return "", fmt.Errorf("unknown section %q (expected LPS or EPS)", value)
}

// ParseAspect resolves a user-entered aspect token.
func ParseAspect(value string) (cpl.Aspect, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "flat":
		return cpl.AspectFlat, nil
	case "scope":
		return cpl.AspectScope, nil
	}
	return "", fmt.Errorf("unknown aspect %q (expected Flat or Scope)", value)
}

// CanonicalTheatreID normalizes a theatre identifier to its canonical
// upper-case form.
func CanonicalTheatreID(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}

// UploadedCPL binds extracted CPL metadata to its upload bookkeeping. Order
// is 1-based display order and stays contiguous as the working set mutates.
type UploadedCPL struct {
	ID               string       `json:"id"`
	FileName         string       `json:"fileName"`
	Metadata         cpl.Metadata `json:"metadata"`
	Order            int          `json:"order"`
	Validated        bool         `json:"validated"`
	ValidationErrors []string     `json:"validationErrors"`
}

// Configuration is the immutable-once-submitted input to identity
// derivation, stitching, and package emission.
type Configuration struct {
	TheatreName string        `json:"theatreName"`
	TheatreID   string        `json:"theatreId"`
	Rating      Rating        `json:"rating"`
	Section     Section       `json:"section"`
	Aspect      cpl.Aspect    `json:"aspect"`
	StartDate   string        `json:"startDate"`
	CPLs        []UploadedCPL `json:"cpls"`
}

// Validate checks that every pod identity field is present and well formed.
// All identity fields must be set before stitching or generation is
// attempted.
func (c Configuration) Validate() error {
	if strings.TrimSpace(c.TheatreName) == "" {
		return fmt.Errorf("theatre name is required")
	}
	if strings.TrimSpace(c.TheatreID) == "" {
		return fmt.Errorf("theatre id is required")
	}
	if _, err := ParseRating(string(c.Rating)); err != nil {
		return err
	}
	if _, err := ParseSection(string(c.Section)); err != nil {
		return err
	}
	if _, err := ParseAspect(string(c.Aspect)); err != nil {
		return err
	}
	if _, err := poddate.Parse(c.StartDate); err != nil {
		return fmt.Errorf("start date: %w", err)
	}
	return nil
}

// Record is a compiled ad pod as persisted by the store. Configuration is
// retained in full so the package can be re-emitted on demand.
type Record struct {
	ID            string        `json:"id"`
	PodName       string        `json:"podName"`
	Configuration Configuration `json:"configuration"`
	Status        Status        `json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
	GeneratedAt   *time.Time    `json:"generatedAt,omitempty"`
	ErrorMessage  string        `json:"errorMessage,omitempty"`
}
