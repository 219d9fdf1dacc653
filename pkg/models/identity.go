package models

// Identity is a snapshot of the two session slots at a point in time. Loads
// issued against one snapshot are discarded if the snapshot no longer matches
// when the response lands.
type Identity struct {
	UserToken  string
	AdminToken string
	User       *User
}

func (i Identity) IsAdmin() bool { return i.AdminToken != "" }

func (i Identity) HasUser() bool { return i.UserToken != "" }

// Present reports whether any identity is active at all.
func (i Identity) Present() bool { return i.IsAdmin() || i.HasUser() }

func (i Identity) Equal(o Identity) bool {
	if i.UserToken != o.UserToken || i.AdminToken != o.AdminToken {
		return false
	}
	switch {
	case i.User == nil && o.User == nil:
		return true
	case i.User == nil || o.User == nil:
		return false
	default:
		return i.User.ID == o.User.ID
	}
}
