package domain

type Review struct {
	User    string `json:"user"`
	Rating  int    `json:"rating"` // 1..5
	Comment string `json:"comment"`
}

// SameAs is the duplicate predicate used when merging stored reviews:
// author and comment text both match.
func (r Review) SameAs(o Review) bool {
	return r.User == o.User && r.Comment == o.Comment
}
