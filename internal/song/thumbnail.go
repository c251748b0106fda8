package song

// ThumbnailSet holds the thumbnail variants a provider returns for a video.
// Any of them may be empty.
type ThumbnailSet struct {
	MaxRes   string
	Standard string
	High     string
	Medium   string
	Default  string
}

// BestThumbnail picks the highest-resolution thumbnail available, falling
// back to the single default URL when no variant is present.
func BestThumbnail(t ThumbnailSet) string {
	for _, url := range []string{t.MaxRes, t.Standard, t.High, t.Medium, t.Default} {
		if url != "" {
			return url
		}
	}
	return ""
}
