package ann

import "strings"

// Links builds the deterministic display URLs derived from a release ID.
// No network calls are involved; both URLs are pure string construction.
type Links struct {
	// Base is the encyclopedia host serving release pages.
	Base string
	// CDN is the host serving cover thumbnails.
	CDN string
}

// NewLinks normalizes the host URLs into a Links value.
func NewLinks(base, cdn string) Links {
	return Links{
		Base: strings.TrimRight(strings.TrimSpace(base), "/"),
		CDN:  strings.TrimRight(strings.TrimSpace(cdn), "/"),
	}
}

// ReleasePage returns the public page for one release.
func (l Links) ReleasePage(releaseID string) string {
	return l.Base + "/encyclopedia/releases.php?id=" + releaseID
}

// CoverImage returns the 200x300 cover thumbnail for one release.
func (l Links) CoverImage(releaseID string) string {
	return l.CDN + "/thumbnails/area200x300/releases/" + releaseID + ".jpg"
}
