// Package stitch merges validated CPLs into one synthetic composition
// playlist.
package stitch

import (
	"fmt"
	"time"

	"adpod/internal/cpl"
	"adpod/internal/identity"
	"adpod/internal/pod"
)

// DefaultCreator identifies the compiler in stitched playlists and emitted
// documents.
const DefaultCreator = "Qube Ad Pod Compiler"

// Stitch concatenates the reels of every CPL, in upload order, into a single
// playlist record. Each source reel becomes a new reel with a fresh id and a
// hash-derived UUID; the underlying asset list is copied verbatim so asset
// identity and order survive exactly. Reel numbering is 1-based and global
// across all source CPLs.
//
// The caller must have validated the set first; Stitch assumes homogeneity
// and does not re-check it.
func Stitch(cpls []pod.UploadedCPL, config pod.Configuration, creator string, issueDate time.Time) cpl.Metadata {
	podName := identity.PodName(config)
	podHash := identity.PodHash(config)
	if creator == "" {
		creator = DefaultCreator
	}

	var reels []cpl.Reel
	reelCounter := 1
	for _, uploaded := range cpls {
		for _, source := range uploaded.Metadata.Reels {
			assets := make([]cpl.Asset, len(source.Assets))
			copy(assets, source.Assets)

			reels = append(reels, cpl.Reel{
				ID:       fmt.Sprintf("reel-%d", reelCounter),
				UUID:     identity.ReelUUID(podHash, reelCounter),
				Assets:   assets,
				Duration: source.Duration,
				EditRate: source.EditRate,
			})
			reelCounter++
		}
	}

	return cpl.Metadata{
		UUID:         identity.PodUUID(podHash),
		ContentTitle: podName,
		EditRate:     cpls[0].Metadata.EditRate,
		Aspect:       cpls[0].Metadata.Aspect,
		Encrypted:    false,
		Reels:        reels,
		IssueDate:    issueDate.UTC().Format(time.RFC3339),
		Creator:      creator,
	}
}
