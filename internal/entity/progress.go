package entity

import (
	"encoding/json"
	"strconv"
)

// Progress tracks the last completed page of the multi-step form for one email.
type Progress struct {
	Email       string          `json:"email"`
	FormData    json.RawMessage `json:"formData,omitempty"`
	CurrentPage string          `json:"currentPage"`
	Token       string          `json:"token,omitempty"`
}

// Advance bumps CurrentPage by one. A blank or non-numeric page counts as 0.
func (p *Progress) Advance() {
	page, err := strconv.Atoi(p.CurrentPage)
	if err != nil {
		page = 0
	}
	p.CurrentPage = strconv.Itoa(page + 1)
}
