package models

// Identity is the acting user resolved from the session, passed explicitly
// into the service layer rather than read from ambient state. A zero value
// means the request could not be attributed to a user.
type Identity struct {
	UserID string
	Email  string
}

func (i Identity) IsZero() bool { return i.UserID == "" }
