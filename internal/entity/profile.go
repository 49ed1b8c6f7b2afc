package entity

// Profile is the single per-installation record holding the login
// credentials and the business display fields.
type Profile struct {
	StoredUsername  string `json:"storedUsername"`
	StoredPassword  string `json:"storedPassword"` // bcrypt hash
	BusinessName    string `json:"businessName,omitempty"`
	BusinessAddress string `json:"businessAddress,omitempty"`
	BusinessContact string `json:"businessContact,omitempty"`
	Currency        string `json:"currency,omitempty"`
	ProfilePicture  string `json:"profilePicture,omitempty"`
}

// User is the read-time view of the profile exposed inside a Dataset.
type User struct {
	Username        string `json:"username,omitempty"`
	BusinessName    string `json:"businessName"`
	BusinessAddress string `json:"businessAddress"`
	BusinessContact string `json:"businessContact"`
	Currency        string `json:"currency"`
	ProfilePicture  string `json:"profilePicture"`
}

// ProjectUser builds the User view of p, taking each empty field from fallback.
func ProjectUser(p Profile, fallback User) User {
	u := fallback
	u.Username = p.StoredUsername
	if p.BusinessName != "" {
		u.BusinessName = p.BusinessName
	}
	if p.BusinessAddress != "" {
		u.BusinessAddress = p.BusinessAddress
	}
	if p.BusinessContact != "" {
		u.BusinessContact = p.BusinessContact
	}
	if p.Currency != "" {
		u.Currency = p.Currency
	}
	if p.ProfilePicture != "" {
		u.ProfilePicture = p.ProfilePicture
	}
	return u
}
