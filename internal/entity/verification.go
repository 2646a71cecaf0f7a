package entity

const (
	EmailNotVerified = "0"
	EmailVerified    = "1"
)

// PhoneVerification holds the last code issued for a phone number. A new
// request overwrites Code; there is no expiry.
type PhoneVerification struct {
	PhoneNumber string `json:"phone_number"`
	Code        int    `json:"code"`
}

type EmailVerification struct {
	Email      string `json:"email"`
	Token      string `json:"token"`
	IsVerified string `json:"isVerified"`
}

func (v *EmailVerification) Verified() bool {
	return v.IsVerified == EmailVerified
}
