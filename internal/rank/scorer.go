package rank

// Scorer assigns a heuristic extraction-quality score in [0,1] to a listing.
// It ranks records for the reviewer; it never gates approval on its own.
type Scorer interface {
	Score(rawURL, title string) float64
}
