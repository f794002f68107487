package catalog

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"anishelf/internal/library"
)

type reportItem struct {
	ID        int64  `xml:"id"`
	Name      string `xml:"name"`
	Type      string `xml:"type"`
	Precision string `xml:"precision"`
}

type report struct {
	Items []reportItem `xml:"item"`
}

// ParseReport reads an encyclopedia reports XML document and returns the
// catalog entries it lists. Items without a positive ID or a name are
// rejected; the report is the authoritative catalog source and a bad row
// means a bad export.
func ParseReport(r io.Reader) ([]library.Show, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}

	var parsed report
	if err := xml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}

	shows := make([]library.Show, 0, len(parsed.Items))
	for i, item := range parsed.Items {
		name := strings.TrimSpace(item.Name)
		if item.ID <= 0 || name == "" {
			return nil, fmt.Errorf("report item %d is missing id or name", i)
		}
		shows = append(shows, library.Show{
			AnimeID:   item.ID,
			Title:     name,
			Type:      strings.TrimSpace(item.Type),
			Precision: strings.TrimSpace(item.Precision),
		})
	}
	return shows, nil
}
