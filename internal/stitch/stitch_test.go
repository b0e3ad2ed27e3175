package stitch_test

import (
	"fmt"
	"testing"
	"time"

	"adpod/internal/cpl"
	"adpod/internal/identity"
	"adpod/internal/pod"
	"adpod/internal/stitch"
)

var issueDate = time.Date(2026, time.February, 1, 12, 0, 0, 0, time.UTC)

func uploadedWithReels(uuid string, reelCount int) pod.UploadedCPL {
	reels := make([]cpl.Reel, 0, reelCount)
	for i := 0; i < reelCount; i++ {
		reels = append(reels, cpl.Reel{
			ID:       fmt.Sprintf("reel-%d", i),
			UUID:     fmt.Sprintf("%s-reel-%d", uuid, i),
			EditRate: "24 1",
			Assets: []cpl.Asset{
				{UUID: fmt.Sprintf("%s-pic-%d", uuid, i)},
				{UUID: fmt.Sprintf("%s-snd-%d", uuid, i)},
			},
		})
	}
	return pod.UploadedCPL{
		ID:       uuid,
		FileName: uuid + ".xml",
		Metadata: cpl.Metadata{
			UUID:         uuid,
			ContentTitle: "Spot " + uuid,
			EditRate:     "24 1",
			Aspect:       cpl.AspectFlat,
			Reels:        reels,
		},
	}
}

func testConfig(cpls ...pod.UploadedCPL) pod.Configuration {
	return pod.Configuration{
		TheatreName: "Cinema Paradiso",
		TheatreID:   "T1042",
		Rating:      pod.RatingPG13,
		Section:     pod.SectionLPS,
		Aspect:      cpl.AspectFlat,
		StartDate:   "06-Feb-2026",
		CPLs:        cpls,
	}
}

func TestStitchReelCountConservation(t *testing.T) {
	first := uploadedWithReels("u1", 2)
	second := uploadedWithReels("u2", 3)
	config := testConfig(first, second)

	stitched := stitch.Stitch(config.CPLs, config, "", issueDate)

	if len(stitched.Reels) != 5 {
		t.Fatalf("expected 5 reels, got %d", len(stitched.Reels))
	}
	for i, reel := range stitched.Reels {
		wantID := fmt.Sprintf("reel-%d", i+1)
		if reel.ID != wantID {
			t.Fatalf("reel %d: expected id %q, got %q", i, wantID, reel.ID)
		}
	}
}

func TestStitchGlobalReelNumberingAndUUIDs(t *testing.T) {
	config := testConfig(uploadedWithReels("u1", 1), uploadedWithReels("u2", 1))
	hash := identity.PodHash(config)

	stitched := stitch.Stitch(config.CPLs, config, "", issueDate)

	if stitched.UUID != identity.PodUUID(hash) {
		t.Fatalf("unexpected pod uuid: %q", stitched.UUID)
	}
	for i, reel := range stitched.Reels {
		want := identity.ReelUUID(hash, i+1)
		if reel.UUID != want {
			t.Fatalf("reel %d: expected uuid %q, got %q", i, want, reel.UUID)
		}
	}
}

func TestStitchPreservesAssetIdentityAndOrder(t *testing.T) {
	source := uploadedWithReels("u1", 2)
	config := testConfig(source)

	stitched := stitch.Stitch(config.CPLs, config, "", issueDate)

	for i, reel := range stitched.Reels {
		sourceReel := source.Metadata.Reels[i]
		if len(reel.Assets) != len(sourceReel.Assets) {
			t.Fatalf("reel %d: asset count changed", i)
		}
		for j, asset := range reel.Assets {
			if asset.UUID != sourceReel.Assets[j].UUID {
				t.Fatalf("reel %d asset %d: expected %q, got %q", i, j, sourceReel.Assets[j].UUID, asset.UUID)
			}
		}
	}
}

func TestStitchHeaderFields(t *testing.T) {
	config := testConfig(uploadedWithReels("u1", 1))

	stitched := stitch.Stitch(config.CPLs, config, "", issueDate)

	if stitched.ContentTitle != identity.PodName(config) {
		t.Fatalf("expected pod name title, got %q", stitched.ContentTitle)
	}
	if stitched.EditRate != "24 1" || stitched.Aspect != cpl.AspectFlat {
		t.Fatalf("rate/aspect not carried from first CPL: %q %q", stitched.EditRate, stitched.Aspect)
	}
	if stitched.Encrypted {
		t.Fatal("stitched output must be unencrypted")
	}
	if stitched.Creator != stitch.DefaultCreator {
		t.Fatalf("expected default creator, got %q", stitched.Creator)
	}
	if stitched.IssueDate != "2026-02-01T12:00:00Z" {
		t.Fatalf("unexpected issue date: %q", stitched.IssueDate)
	}

	custom := stitch.Stitch(config.CPLs, config, "Acme Compiler", issueDate)
	if custom.Creator != "Acme Compiler" {
		t.Fatalf("expected custom creator, got %q", custom.Creator)
	}
}

func TestStitchOrderFollowsUploadOrder(t *testing.T) {
	first := uploadedWithReels("u1", 1)
	second := uploadedWithReels("u2", 1)

	forward := stitch.Stitch([]pod.UploadedCPL{first, second}, testConfig(first, second), "", issueDate)
	reversed := stitch.Stitch([]pod.UploadedCPL{second, first}, testConfig(second, first), "", issueDate)

	if forward.Reels[0].Assets[0].UUID == reversed.Reels[0].Assets[0].UUID {
		t.Fatal("stitched playback order must follow upload order")
	}
	// The pod hash (and so the pod UUID) is upload-order invariant.
	if forward.UUID != reversed.UUID {
		t.Fatalf("pod uuid must be upload-order invariant: %q vs %q", forward.UUID, reversed.UUID)
	}
}
