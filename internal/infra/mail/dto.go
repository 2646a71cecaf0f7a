package mail

import "gopkg.in/gomail.v2"

type VerificationEmailData struct {
	Link      string
	ExpiresIn string
}

// Dialer is satisfied by *gomail.Dialer.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type EmailSender struct {
	From    string
	LinkTTL string
	dialer  Dialer
}
