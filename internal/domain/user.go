package domain

type User struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Password string `json:"password"` // bcrypt hash
	Email    string `json:"email"`
}

// DisplayName is the name used as a review author.
func (u User) DisplayName() string {
	switch {
	case u.FullName != "":
		return u.FullName
	case u.Username != "":
		return u.Username
	}
	return "Guest"
}
