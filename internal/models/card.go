package models

// Card holds payment card metadata only.
type Card struct {
	Number    string `json:"number" yaml:"number"`
	Type      string `json:"type" yaml:"type"`
	ImagePath string `json:"image_path,omitempty" yaml:"image_path,omitempty"`
}

// Masked returns the last four characters of the card number.
func (c Card) Masked() string {
	if len(c.Number) <= 4 {
		return c.Number
	}
	return c.Number[len(c.Number)-4:]
}

// AccountProfile holds the account holder's contact details.
type AccountProfile struct {
	Name         string   `json:"name" yaml:"name"`
	Emails       []string `json:"emails" yaml:"emails"`
	PhoneNumbers []string `json:"phone_numbers" yaml:"phone_numbers"`
	ImagePath    string   `json:"image_path,omitempty" yaml:"image_path,omitempty"`
}
