package xano

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/automatedtaxcredits/intake-api/internal/entity"
)

// phoneVerificationRecord tolerates code stored as text.
type phoneVerificationRecord struct {
	PhoneNumber string          `json:"phone_number"`
	Code        json.RawMessage `json:"code"`
}

func (r phoneVerificationRecord) toEntity() *entity.PhoneVerification {
	return &entity.PhoneVerification{
		PhoneNumber: r.PhoneNumber,
		Code:        leadingInt(scalarString(r.Code)),
	}
}

// emailVerificationRecord tolerates isVerified stored as a string or a number.
type emailVerificationRecord struct {
	ID         int64           `json:"id"`
	Email      string          `json:"email"`
	Token      string          `json:"token"`
	IsVerified json.RawMessage `json:"isVerified"`
}

func (r emailVerificationRecord) toEntity() *entity.EmailVerification {
	return &entity.EmailVerification{
		Email:      r.Email,
		Token:      r.Token,
		IsVerified: flagString(r.IsVerified),
	}
}

// progressRecord tolerates currentPage stored as a number.
type progressRecord struct {
	ID          int64           `json:"id"`
	Email       string          `json:"email"`
	FormData    json.RawMessage `json:"formData"`
	CurrentPage json.RawMessage `json:"currentPage"`
	Token       string          `json:"token"`
}

func (r progressRecord) toEntity() *entity.Progress {
	p := &entity.Progress{
		Email:       r.Email,
		CurrentPage: scalarString(r.CurrentPage),
		Token:       r.Token,
	}
	if len(r.FormData) > 0 && string(r.FormData) != "null" {
		p.FormData = r.FormData
	}
	return p
}

func flagString(raw json.RawMessage) string {
	switch s := scalarString(raw); s {
	case "1", "true":
		return entity.EmailVerified
	default:
		return entity.EmailNotVerified
	}
}

func scalarString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return strconv.FormatBool(b)
	}
	return ""
}

// leadingInt parses the leading decimal digits of s; "456789.0" reads as 456789.
// Anything without a leading digit reads as 0, which never matches an issued code.
func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
