package store_test

import (
	"context"
	"testing"
	"time"

	"adpod/internal/cpl"
	"adpod/internal/pod"
	"adpod/internal/testsupport"
)

func sampleRecord(podName string, status pod.Status) *pod.Record {
	return &pod.Record{
		PodName: podName,
		Status:  status,
		Configuration: pod.Configuration{
			TheatreName: "Cinema Paradiso",
			TheatreID:   "T1042",
			Rating:      pod.RatingPG13,
			Section:     pod.SectionLPS,
			Aspect:      cpl.AspectFlat,
			StartDate:   "06-Feb-2026",
			CPLs: []pod.UploadedCPL{
				{
					ID:       "upload-1",
					FileName: "spot.xml",
					Order:    1,
					Metadata: cpl.Metadata{
						UUID:     "urn:uuid:cpl-one",
						EditRate: "24 1",
						Aspect:   cpl.AspectFlat,
						Reels: []cpl.Reel{
							{ID: "reel-0", UUID: "r0", Assets: []cpl.Asset{{UUID: "urn:uuid:a1"}}},
						},
					},
				},
			},
		},
	}
}

func TestSaveAssignsIdentityAndRoundTripsConfiguration(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	s := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	record := sampleRecord("T1042_PG13_LPS_FLAT_06-Feb-2026", pod.StatusGenerated)
	generatedAt := time.Now().UTC().Truncate(time.Second)
	record.GeneratedAt = &generatedAt

	if err := s.Save(ctx, record); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if record.ID == "" {
		t.Fatal("expected assigned id")
	}
	if record.CreatedAt.IsZero() {
		t.Fatal("expected assigned created-at")
	}

	fetched, err := s.GetByID(ctx, record.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if fetched == nil {
		t.Fatal("expected record")
	}
	if fetched.PodName != record.PodName || fetched.Status != pod.StatusGenerated {
		t.Fatalf("unexpected record: %+v", fetched)
	}
	if fetched.GeneratedAt == nil || !fetched.GeneratedAt.Equal(generatedAt) {
		t.Fatalf("generated-at not round-tripped: %v", fetched.GeneratedAt)
	}

	fetchedCfg := fetched.Configuration
	if fetchedCfg.TheatreID != "T1042" || len(fetchedCfg.CPLs) != 1 {
		t.Fatalf("configuration not round-tripped: %+v", fetchedCfg)
	}
	if fetchedCfg.CPLs[0].Metadata.Reels[0].Assets[0].UUID != "urn:uuid:a1" {
		t.Fatal("nested reel/asset data lost")
	}
}

func TestGetByIDMissingReturnsNil(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	s := testsupport.MustOpenStore(t, cfg)

	record, err := s.GetByID(context.Background(), "missing")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if record != nil {
		t.Fatalf("expected nil for missing record, got %+v", record)
	}
}

func TestSaveRejectsUnknownStatus(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	s := testsupport.MustOpenStore(t, cfg)

	record := sampleRecord("pod", pod.Status("bogus"))
	if err := s.Save(context.Background(), record); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestListFiltersAndOrders(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	s := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	older := sampleRecord("older", pod.StatusGenerated)
	older.CreatedAt = time.Now().UTC().Add(-time.Hour)
	newer := sampleRecord("newer", pod.StatusGenerated)
	failed := sampleRecord("failed", pod.StatusFailed)
	failed.ErrorMessage = "CPL validation failed: CPL 1 (x): CPL is encrypted. Only unencrypted CPLs are supported."

	for _, record := range []*pod.Record{older, newer, failed} {
		if err := s.Save(ctx, record); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	all, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 records, got %d", len(all))
	}
	if all[len(all)-1].PodName != "older" {
		t.Fatalf("expected newest-first ordering, got %v", []string{all[0].PodName, all[1].PodName, all[2].PodName})
	}

	generated, err := s.List(ctx, pod.StatusGenerated)
	if err != nil {
		t.Fatalf("List filtered: %v", err)
	}
	if len(generated) != 2 {
		t.Fatalf("expected 2 generated records, got %d", len(generated))
	}

	found, err := s.GetByName(ctx, "failed")
	if err != nil {
		t.Fatalf("GetByName: %v", err)
	}
	if found == nil || found.ErrorMessage == "" {
		t.Fatalf("expected failed record with message, got %+v", found)
	}
}

func TestRemove(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	s := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	record := sampleRecord("pod", pod.StatusGenerated)
	if err := s.Save(ctx, record); err != nil {
		t.Fatalf("Save: %v", err)
	}

	removed, err := s.Remove(ctx, record.ID)
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if !removed {
		t.Fatal("expected removal")
	}

	removed, err = s.Remove(ctx, record.ID)
	if err != nil {
		t.Fatalf("Remove again: %v", err)
	}
	if removed {
		t.Fatal("expected no-op removal")
	}
}

func TestStatsAndHealth(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	s := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	if err := s.Save(ctx, sampleRecord("a", pod.StatusGenerated)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save(ctx, sampleRecord("b", pod.StatusFailed)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	stats, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats[pod.StatusGenerated] != 1 || stats[pod.StatusFailed] != 1 {
		t.Fatalf("unexpected stats: %v", stats)
	}

	health, err := s.CheckHealth(ctx)
	if err != nil {
		t.Fatalf("CheckHealth: %v", err)
	}
	if !health.DatabaseExists || !health.DatabaseReadable || !health.TableExists {
		t.Fatalf("unexpected health: %+v", health)
	}
	if !health.IntegrityCheck || health.TotalPods != 2 {
		t.Fatalf("unexpected health: %+v", health)
	}
}
