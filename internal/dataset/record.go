package dataset

// Record is one product review. Records are immutable once loaded; Text may
// be empty when the reviewer left no free-text comment.
type Record struct {
	Product string
	Region  string
	Rating  int
	Text    string
}
