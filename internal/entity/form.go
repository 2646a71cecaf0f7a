package entity

import "time"

// FormSubmission is a form-tool response with answers re-keyed to canonical names.
type FormSubmission struct {
	WebhookID   string         `json:"webhookId"`
	Event       string         `json:"event"`
	FormID      string         `json:"formId,omitempty"`
	SubmittedAt *time.Time     `json:"submittedAt,omitempty"`
	Email       string         `json:"email,omitempty"`
	Answers     map[string]any `json:"answers"`
}

// StageCount is one row of the Xano get_stages listing.
type StageCount struct {
	Stage any `json:"Stage"`
}
