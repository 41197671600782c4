package models

// Setting is the process-wide contact configuration singleton. A row is
// created with defaults on first read.
type Setting struct {
	BaseModel
	WhatsAppNumber  string `json:"whatsapp_number"`
	WhatsAppMessage string `json:"whatsapp_message"`
	ContactPhone    string `json:"contact_phone"`
	ContactEmail    string `json:"contact_email"`
	ContactAddress  string `json:"contact_address"`
}

// DefaultSetting returns the values seeded when no settings row exists.
func DefaultSetting() Setting {
	return Setting{
		WhatsAppNumber:  "+919876543210",
		WhatsAppMessage: "Hello, I am interested in your property.",
		ContactPhone:    "+919876543210",
		ContactEmail:    "info@damrideal.com",
		ContactAddress:  "123, Real Estate Street, Mumbai, India",
	}
}
