package models

// User is an account that owns links and receives shares.
type User struct {
	ID           string `json:"id" db:"id"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password"` // bcrypt hash, never serialized
}

// Session is the identity carried by a verified access token.
type Session struct {
	UserID string
	Email  string
}

// Owns reports whether the session belongs to the given user.
func (s *Session) Owns(userID string) bool {
	return s != nil && s.UserID != "" && s.UserID == userID
}
