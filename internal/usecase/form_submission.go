package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"

	"github.com/automatedtaxcredits/intake-api/internal/entity"
)

// canonicalLabels maps form-tool question labels (lowercased) to the keys
// the funnel uses everywhere else.
var canonicalLabels = map[string]string{
	"first name":          "firstName",
	"last name":           "lastName",
	"full name":           "clientName",
	"name":                "clientName",
	"email":               "email",
	"email address":       "email",
	"phone":               "phone",
	"phone number":        "phone",
	"mobile":              "phone",
	"business name":       "businessName",
	"street address":      "streetAddress",
	"address":             "streetAddress",
	"city":                "city",
	"zip":                 "zipCode",
	"zip code":            "zipCode",
	"zipcode":             "zipCode",
	"state":               "state",
	"county":              "county",
	"tax type":            "taxType",
	"payment plan":        "paymentPlan",
	"issue reason":        "issueReason",
	"unfiled return":      "unfiledReturn",
	"unfiled returns":     "unfiledReturn",
	"amount owed":         "irsOwe",
	"irs owe":             "irsOwe",
	"how much do you owe": "irsOwe",
	"protect assets":      "protectAssets",
	"contact reason":      "contactReason",
	"best time to call":   "bestTimeToCall",
	"referral source":     "referralSource",
}

type FormSubmissionUseCase struct {
	Store FormStore
}

func NewFormSubmissionUseCase(store FormStore) *FormSubmissionUseCase {
	return &FormSubmissionUseCase{Store: store}
}

// Execute re-keys the submitted answers and stores them. The store's
// response body is returned untouched.
func (uc *FormSubmissionUseCase) Execute(ctx context.Context, in SaveToXanoRequest) (json.RawMessage, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}

	sub := MapFormSubmission(in)
	body, err := uc.Store.SaveFormSubmission(ctx, sub)
	if err != nil {
		return nil, &TechnicalError{Code: CodeUpstreamCall, Message: UpstreamFailureMessage, Err: err}
	}
	return body, nil
}

func MapFormSubmission(in SaveToXanoRequest) *entity.FormSubmission {
	sub := &entity.FormSubmission{
		WebhookID: in.WebhookID.Value,
		Event:     in.Event.Value,
		FormID:    in.Data.FormID,
		Answers:   make(map[string]any, len(in.Data.Fields)),
	}
	if in.Data.CreatedAt != nil {
		t := in.Data.CreatedAt.UTC()
		sub.SubmittedAt = &t
	}

	for _, f := range in.Data.Fields {
		key, ok := canonicalLabels[strings.ToLower(strings.TrimSpace(f.Label))]
		if !ok {
			key = f.Key
		}
		if key == "" {
			continue
		}
		sub.Answers[key] = answerValue(f.Value)
	}

	if email, ok := sub.Answers["email"].(string); ok {
		sub.Email = email
	}
	return sub
}

// answerValue joins lists of strings with ", " and passes anything else through.
func answerValue(raw json.RawMessage) any {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}
	if raw[0] == '[' {
		var list []string
		if err := json.Unmarshal(raw, &list); err == nil {
			return strings.Join(list, ", ")
		}
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return string(raw)
	}
	return v
}
