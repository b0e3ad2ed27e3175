// Package dcp emits the three-document package (asset map, packing list,
// composition playlist) for a validated pod configuration.
//
// The emitter's contract is internal consistency: all three documents
// reference the same pod UUID and the same essence set. It does not aim for
// byte-exact SMPTE schema conformance, and essence files are referenced by
// UUID only.
package dcp

import (
	"strings"
	"time"

	"adpod/internal/compat"
	"adpod/internal/identity"
	"adpod/internal/pod"
	"adpod/internal/stitch"
)

// Package is the emitted result: three XML documents plus the ordered,
// de-duplicated list of referenced essence UUIDs. It is recomputed on demand
// from a pod configuration and never persisted on its own.
type Package struct {
	PodName       string   `json:"podName"`
	AssetMap      string   `json:"assetMap"`
	PKL           string   `json:"pkl"`
	CPL           string   `json:"cpl"`
	MXFReferences []string `json:"mxfReferences"`
}

// GenerationError reports that package emission was attempted on an
// incompatible CPL set. Violations carries the validator's full error list.
type GenerationError struct {
	Violations []string
}

func (e *GenerationError) Error() string {
	return "CPL validation failed: " + strings.Join(e.Violations, ", ")
}

// Profile carries the document identity fields and the clock used for issue
// dates. Zero values fall back to the compiler defaults and wall-clock time.
type Profile struct {
	Issuer  string
	Creator string
	Now     func() time.Time
}

func (p Profile) normalized() Profile {
	if p.Issuer == "" {
		p.Issuer = DefaultIssuer
	}
	if p.Creator == "" {
		p.Creator = stitch.DefaultCreator
	}
	if p.Now == nil {
		p.Now = time.Now
	}
	return p
}

// Generate validates, stitches, and renders the package for a pod
// configuration. It always re-validates internally, so it is safe to call
// without a separate pre-check; an incompatible set returns a
// *GenerationError and no documents.
func Generate(config pod.Configuration, profile Profile) (*Package, error) {
	profile = profile.normalized()

	result := compat.Validate(config.CPLs)
	if !result.Valid {
		return nil, &GenerationError{Violations: result.Errors}
	}

	stitched := stitch.Stitch(config.CPLs, config, profile.Creator, profile.Now())

	// Collect distinct asset UUIDs in first-seen order.
	seen := make(map[string]struct{})
	var mxfReferences []string
	for _, reel := range stitched.Reels {
		for _, asset := range reel.Assets {
			if _, ok := seen[asset.UUID]; ok {
				continue
			}
			seen[asset.UUID] = struct{}{}
			mxfReferences = append(mxfReferences, asset.UUID)
		}
	}

	return &Package{
		PodName:       identity.PodName(config),
		AssetMap:      RenderAssetMap(stitched, mxfReferences, profile.Issuer),
		PKL:           RenderPKL(stitched, mxfReferences, profile.Issuer),
		CPL:           RenderCPL(stitched, profile.Issuer),
		MXFReferences: mxfReferences,
	}, nil
}
