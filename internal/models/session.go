package models

// Session is the authenticated user as carried by the session token.
// It is a copy taken at sign-in (or re-issued on profile update), not a live
// view of the users collection.
type Session struct {
	UserID int64  `json:"uid"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

func (s *Session) IsAgent() bool { return s != nil && s.Role == RoleAgent }
