package catalog_test

import (
	"context"
	"strings"
	"testing"

	"anishelf/internal/catalog"
	"anishelf/internal/logging"
	"anishelf/internal/testsupport"
)

const sampleReport = `<report>
<args>anime reports</args>
<item>
<id>4658</id>
<gid>2074193554</gid>
<type>TV</type>
<name>Fullmetal Alchemist: Brotherhood</name>
<precision>TV</precision>
<vintage>2009-04-05</vintage>
</item>
<item>
<id>11770</id>
<type>TV</type>
<name>One Punch Man</name>
<precision>TV</precision>
</item>
</report>`

func TestParseReport(t *testing.T) {
	shows, err := catalog.ParseReport(strings.NewReader(sampleReport))
	if err != nil {
		t.Fatalf("ParseReport returned error: %v", err)
	}
	if len(shows) != 2 {
		t.Fatalf("expected 2 shows, got %d", len(shows))
	}
	if shows[0].AnimeID != 4658 || shows[0].Title != "Fullmetal Alchemist: Brotherhood" {
		t.Fatalf("unexpected first show: %#v", shows[0])
	}
	if shows[1].Type != "TV" || shows[1].Precision != "TV" {
		t.Fatalf("unexpected second show: %#v", shows[1])
	}
}

func TestParseReportRejectsBadItems(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"not xml", "shows: []"},
		{"missing id", "<report><item><name>Show</name></item></report>"},
		{"missing name", "<report><item><id>5</id></item></report>"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := catalog.ParseReport(strings.NewReader(tc.body)); err == nil {
				t.Fatal("expected parse error")
			}
		})
	}
}

func TestImportIsRepeatable(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		count, err := catalog.Import(ctx, store, strings.NewReader(sampleReport), logging.NewNop())
		if err != nil {
			t.Fatalf("Import run %d failed: %v", i, err)
		}
		if count != 2 {
			t.Fatalf("expected 2 imported shows, got %d", count)
		}
	}

	total, err := store.CountShows(ctx)
	if err != nil {
		t.Fatalf("CountShows failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected 2 catalog rows after re-import, got %d", total)
	}

	show, err := store.GetShow(ctx, 11770)
	if err != nil {
		t.Fatalf("GetShow failed: %v", err)
	}
	if show.Title != "One Punch Man" {
		t.Fatalf("unexpected show: %#v", show)
	}
}
