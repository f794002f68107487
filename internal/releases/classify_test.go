package releases_test

import (
	"testing"

	"anishelf/internal/releases"
)

func TestClassifyTitle(t *testing.T) {
	cases := []struct {
		name        string
		title       string
		wantFormat  string
		wantEdition string
	}{
		{"plain title", "Anime Title (BD)", "BD", "Standard"},
		{"limited edition", "Anime Title: Limited Edition (DVD/BD)", "DVD/BD", "Limited"},
		{"collectors normalized", "Anime Title - Collectors Edition (BD)", "BD", "Collector's"},
		{"edition after format", "Anime Title (BD) Special Edition", "BD", "Special"},
		{"deluxe", "Anime Title Deluxe Edition (BD)", "BD", "Deluxe"},
		{"no parenthetical", "Anime Title Limited Edition", "", "Limited"},
		{"no markers at all", "Anime Title", "", "Standard"},
		{"lowercase edition marker", "Anime Title special edition (DVD)", "DVD", "Special"},
		{"leading punctuation on edition word", "Anime Title -Limited Edition (BD)", "BD", "Limited"},
		{"multiple parentheticals", "Anime Title (2009) (DVD)", "DVD", "Standard"},
		{"edition with nothing before it", "Edition (BD)", "BD", "Standard"},
		{"empty title", "", "", "Standard"},
		{"empty parenthetical", "Anime Title ()", "", "Standard"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			format, edition := releases.ClassifyTitle(tc.title)
			if format != tc.wantFormat {
				t.Errorf("format: got %q want %q", format, tc.wantFormat)
			}
			if edition != tc.wantEdition {
				t.Errorf("edition: got %q want %q", edition, tc.wantEdition)
			}
		})
	}
}

func TestClassifyTitleIsDeterministic(t *testing.T) {
	title := "Anime Title: Limited Edition (DVD/BD)"
	firstFormat, firstEdition := releases.ClassifyTitle(title)
	for i := 0; i < 10; i++ {
		format, edition := releases.ClassifyTitle(title)
		if format != firstFormat || edition != firstEdition {
			t.Fatalf("classification changed between calls: (%q,%q) vs (%q,%q)",
				firstFormat, firstEdition, format, edition)
		}
	}
}
