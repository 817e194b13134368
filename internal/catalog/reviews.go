package catalog

import "triply/internal/domain"

// MergeReviews appends the stored reviews that aren't already present in base.
// A review is considered present when author and comment both match.
//
// The predicate can hide a legitimately repeated review (same person, same
// text); it is kept as-is until there is a reason to key reviews by id.
func MergeReviews(base, stored []domain.Review) []domain.Review {
	out := make([]domain.Review, 0, len(base)+len(stored))
	out = append(out, base...)
	for _, rv := range stored {
		if containsReview(out, rv) {
			continue
		}
		out = append(out, rv)
	}
	return out
}

func containsReview(list []domain.Review, rv domain.Review) bool {
	for _, x := range list {
		if x.SameAs(rv) {
			return true
		}
	}
	return false
}
