package pod_test

import (
	"testing"

	"adpod/internal/cpl"
	"adpod/internal/pod"
)

func meta(uuid string) cpl.Metadata {
	return cpl.Metadata{
		UUID:         uuid,
		ContentTitle: "Spot " + uuid,
		EditRate:     "24 1",
		Aspect:       cpl.AspectFlat,
		Reels: []cpl.Reel{
			{ID: "reel-0", UUID: "reel-" + uuid, Assets: []cpl.Asset{{UUID: "asset-" + uuid}}},
		},
	}
}

func TestWorksetAddAssignsContiguousOrder(t *testing.T) {
	ws := pod.NewWorkset()
	first := ws.Add("a.xml", meta("u1"))
	second := ws.Add("b.xml", meta("u2"))

	if first.Order != 1 || second.Order != 2 {
		t.Fatalf("unexpected orders: %d, %d", first.Order, second.Order)
	}
	if first.ID == "" || first.ID == second.ID {
		t.Fatalf("expected distinct non-empty ids, got %q and %q", first.ID, second.ID)
	}
	if ws.Validated() {
		t.Fatal("fresh additions must not be validated")
	}
}

func TestWorksetRemoveRenumbers(t *testing.T) {
	ws := pod.NewWorkset()
	ws.Add("a.xml", meta("u1"))
	second := ws.Add("b.xml", meta("u2"))
	ws.Add("c.xml", meta("u3"))

	if !ws.Remove(second.ID) {
		t.Fatal("expected removal to succeed")
	}
	if ws.Remove("missing") {
		t.Fatal("removal of unknown id must report false")
	}

	items := ws.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	for i, item := range items {
		if item.Order != i+1 {
			t.Fatalf("order not contiguous after removal: item %d has order %d", i, item.Order)
		}
	}
	if items[0].FileName != "a.xml" || items[1].FileName != "c.xml" {
		t.Fatalf("unexpected items after removal: %q, %q", items[0].FileName, items[1].FileName)
	}
}

func TestWorksetMutationResetsValidation(t *testing.T) {
	ws := pod.NewWorkset()
	first := ws.Add("a.xml", meta("u1"))

	ws.MarkValidated()
	if !ws.Validated() {
		t.Fatal("expected validated after MarkValidated")
	}
	for _, item := range ws.Items() {
		if !item.Validated {
			t.Fatalf("expected item %s validated", item.FileName)
		}
	}

	ws.Add("b.xml", meta("u2"))
	if ws.Validated() {
		t.Fatal("adding an item must reset validation")
	}

	ws.MarkValidated()
	ws.Remove(first.ID)
	if ws.Validated() {
		t.Fatal("removing an item must reset validation")
	}
}

func TestConfigurationValidate(t *testing.T) {
	valid := pod.Configuration{
		TheatreName: "Cinema Paradiso",
		TheatreID:   "T1042",
		Rating:      pod.RatingPG13,
		Section:     pod.SectionLPS,
		Aspect:      cpl.AspectFlat,
		StartDate:   "06-Feb-2026",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid configuration, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*pod.Configuration)
	}{
		{"missing theatre name", func(c *pod.Configuration) { c.TheatreName = " " }},
		{"missing theatre id", func(c *pod.Configuration) { c.TheatreID = "" }},
		{"bad rating", func(c *pod.Configuration) { c.Rating = "NC-17" }},
		{"bad section", func(c *pod.Configuration) { c.Section = "MID" }},
		{"bad aspect", func(c *pod.Configuration) { c.Aspect = "Wide" }},
		{"bad start date", func(c *pod.Configuration) { c.StartDate = "2026-02-06" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestParseTokens(t *testing.T) {
	if r, err := pod.ParseRating("pg-13"); err != nil || r != pod.RatingPG13 {
		t.Fatalf("ParseRating: %v %v", r, err)
	}
	if _, err := pod.ParseRating("X"); err == nil {
		t.Fatal("expected rating error")
	}
	if s, err := pod.ParseSection("eps"); err != nil || s != pod.SectionEPS {
		t.Fatalf("ParseSection: %v %v", s, err)
	}
	if a, err := pod.ParseAspect("scope"); err != nil || a != cpl.AspectScope {
		t.Fatalf("ParseAspect: %v %v", a, err)
	}
	if got := pod.CanonicalTheatreID(" t1042 "); got != "T1042" {
		t.Fatalf("CanonicalTheatreID: %q", got)
	}
}
