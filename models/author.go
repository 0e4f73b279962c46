package models

// Author identifies who filed a signalement. It is never required and is
// excluded from default reads, only an authenticated client sees it.
// CaptchaToken is transport-only, it carries the captcha proof of public
// submissions and is stripped before anything is persisted.
type Author struct {
	FirstName    string `json:"firstName,omitempty" bson:"firstName,omitempty"`
	LastName     string `json:"lastName,omitempty" bson:"lastName,omitempty"`
	Email        string `json:"email,omitempty" bson:"email,omitempty"`
	CaptchaToken string `json:"captchaToken,omitempty" bson:"-"`
}

// IsEmpty reports whether the author carries no identifying value
func (a *Author) IsEmpty() bool {
	return a == nil || (a.FirstName == "" && a.LastName == "" && a.Email == "")
}
