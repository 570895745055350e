package domain

// Ranges of the cosmetic predicted metrics, as [min, min+span).
const (
	ViewsMin     = 2000
	ViewsSpan    = 10000
	LikesMin     = 500
	LikesSpan    = 1000
	CommentsMin  = 50
	CommentsSpan = 100
)

// PredictedMetrics are placeholder engagement numbers with no relation to
// real performance.
type PredictedMetrics struct {
	Views    int
	Likes    int
	Comments int
}

// InRange reports whether every value lies inside its documented range.
func (m PredictedMetrics) InRange() bool {
	return m.Views >= ViewsMin && m.Views < ViewsMin+ViewsSpan &&
		m.Likes >= LikesMin && m.Likes < LikesMin+LikesSpan &&
		m.Comments >= CommentsMin && m.Comments < CommentsMin+CommentsSpan
}
