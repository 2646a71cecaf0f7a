package usecase

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// Text is a loosely typed JSON scalar kept in string form. The funnel sends
// numbers and booleans where the CRM wants text, so literals keep their JSON
// spelling ("5551234567", "false"). Null leaves it empty.
type Text struct {
	Value  string
	truthy bool
}

func T(s string) Text {
	return Text{Value: s, truthy: s != ""}
}

func (t *Text) UnmarshalJSON(b []byte) error {
	raw := bytes.TrimSpace(b)
	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
		*t = Text{}
	case raw[0] == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		*t = T(s)
	case bytes.Equal(raw, []byte("true")):
		*t = Text{Value: "true", truthy: true}
	case bytes.Equal(raw, []byte("false")):
		*t = Text{Value: "false"}
	case raw[0] == '[' || raw[0] == '{':
		*t = Text{Value: string(raw), truthy: true}
	default:
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return err
		}
		f, err := n.Float64()
		*t = Text{Value: n.String(), truthy: err == nil && f != 0}
	}
	return nil
}

func (t Text) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Value)
}

func (t Text) String() string { return t.Value }

// Present reports whether the value counts as provided: not absent, null,
// empty, zero or false.
func (t Text) Present() bool { return t.truthy }

// Or returns the value when present and def otherwise.
func (t Text) Or(def string) string {
	if t.truthy {
		return t.Value
	}
	return def
}

// Choices is a multi-select answer sent either as a list or a single string.
type Choices []string

func (c *Choices) UnmarshalJSON(b []byte) error {
	raw := bytes.TrimSpace(b)
	if len(raw) > 0 && raw[0] == '[' {
		var items []Text
		if err := json.Unmarshal(raw, &items); err != nil {
			return err
		}
		out := make(Choices, 0, len(items))
		for _, it := range items {
			if it.Value != "" {
				out = append(out, it.Value)
			}
		}
		*c = out
		return nil
	}
	var one Text
	if err := json.Unmarshal(raw, &one); err != nil {
		return err
	}
	if one.Present() {
		*c = Choices{one.Value}
	} else {
		*c = nil
	}
	return nil
}

func (c Choices) Join() string {
	return strings.Join(c, ", ")
}

// Amount is a numeric CRM field forwarded as sent; absent or falsy values become 0.
type Amount struct {
	v any
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	switch x := v.(type) {
	case nil:
		a.v = nil
	case bool:
		if x {
			a.v = x
		} else {
			a.v = nil
		}
	case string:
		if x == "" {
			a.v = nil
		} else {
			a.v = x
		}
	case json.Number:
		if f, err := x.Float64(); err == nil && f == 0 {
			a.v = nil
		} else {
			a.v = x
		}
	default:
		a.v = x
	}
	return nil
}

func (a Amount) Value() any {
	if a.v == nil {
		return 0
	}
	return a.v
}

type InsertDealRequest struct {
	ClientName     Text `json:"clientName" validate:"required"`
	Email          Text `json:"email" validate:"required"`
	FirstName      Text `json:"firstName" validate:"required"`
	LastName       Text `json:"lastName" validate:"required"`
	Phone          Text `json:"phone" validate:"required"`
	EstimatedValue Text `json:"estimated_value" validate:"required"`

	ReferralSource Text `json:"referralSource"`
	ReferralURL    Text `json:"referralURL"`
	S1Q1           Text `json:"s1Q1"`
	S1Q2           Text `json:"s1Q2"`
	S1Q3           Text `json:"s1Q3"`
	ResumeURL      Text `json:"resume_url"`
}

type InsertTaxIntakeRequest struct {
	TaxType       Text    `json:"TaxType" validate:"required"`
	PaymentPlan   Text    `json:"PaymentPlan" validate:"required"`
	IssueReason   Choices `json:"IssueReason" validate:"required"`
	Zipcode       Text    `json:"Zipcode" validate:"required"`
	State         Text    `json:"State" validate:"required"`
	County        Text    `json:"County" validate:"required"`
	UnfiledReturn Text    `json:"UnfiledReturn" validate:"required"`
	IrsOwe        Text    `json:"IrsOwe" validate:"required"`
	ProtectAssets Text    `json:"ProtectAssets" validate:"required"`
	ContactReason Choices `json:"ContactReason" validate:"required"`
	FirstName     Text    `json:"FirstName" validate:"required"`
	LastName      Text    `json:"LastName" validate:"required"`
	Email         Text    `json:"Email" validate:"required"`
	Phone         Text    `json:"Phone" validate:"required"`

	ReferralSource Text `json:"ReferralSource"`
	BusinessName   Text `json:"BusinessName"`
	BestTimeToCall Text `json:"BestTimeToCall"`
}

type UpdateStageRequest struct {
	Stage Text `json:"stage" validate:"required"`
}

type UpdateAmountRequest struct {
	Amount          Amount `json:"amount"`
	IRSBalance      Amount `json:"irs_bal"`
	CalculatedPDF   Amount `json:"pdf_21"`
	CalculationDate Text   `json:"calculation_date"`
}

type UpdateSSNRequest struct {
	SSN Text `json:"ssn" validate:"required"`
}

type UpdateRecordRequest struct {
	Stage         Text `json:"stage" validate:"required"`
	ClientName    Text `json:"clientName" validate:"required"`
	City          Text `json:"city" validate:"required"`
	EffectiveDate Text `json:"effectiveDate" validate:"required"`
	Email         Text `json:"email" validate:"required"`
	FirstName     Text `json:"firstName" validate:"required"`
	LastName      Text `json:"lastName" validate:"required"`
	Phone         Text `json:"phone" validate:"required"`
	State         Text `json:"state" validate:"required"`
	StreetAddress Text `json:"streetAddress" validate:"required"`
	ZipCode       Text `json:"zipCode" validate:"required"`

	ClaimDependent Text `json:"claimDependent"`
	ReferralSource Text `json:"referralSource"`
	ReferralURL    Text `json:"referralURL"`
	S1Q1           Text `json:"s1Q1"`
	S1Q2           Text `json:"s1Q2"`
	S1Q3           Text `json:"s1Q3"`
	S3Q1           Text `json:"s3Q1"`
	S3Q2           Text `json:"s3Q2"`
	S4Q1           Text `json:"s4Q1"`
	S4Q2           Text `json:"s4Q2"`
	S4Q3           Text `json:"s4Q3"`
	S5Q1           Text `json:"s5Q1"`
}

// UpdateExistingRequest requires "refereallURL" but maps "referralURL"; the
// funnel has always sent both spellings.
type UpdateExistingRequest struct {
	ClientName   Text `json:"clientName" validate:"required"`
	Email        Text `json:"email" validate:"required"`
	FirstName    Text `json:"firstName" validate:"required"`
	LastName     Text `json:"lastName" validate:"required"`
	Phone        Text `json:"phone" validate:"required"`
	RefereallURL Text `json:"refereallURL" validate:"required"`

	ReferralSource Text `json:"referralSource"`
	ReferralURL    Text `json:"referralURL"`
	S1Q1           Text `json:"s1Q1"`
	S1Q2           Text `json:"s1Q2"`
	S1Q3           Text `json:"s1Q3"`
}

type RequestAuthCodeRequest struct {
	Phone Text `json:"phone" validate:"required"`
}

type VerifyAuthCodeRequest struct {
	PhoneNumber Text `json:"phone_number" validate:"required"`
	Code        Text `json:"code" validate:"required"`
}

type EmailRequest struct {
	Email Text `json:"email" validate:"required"`
}

type SaveProgressRequest struct {
	Email       Text            `json:"email" validate:"required"`
	FormData    json.RawMessage `json:"formData"`
	CurrentPage Text            `json:"currentPage"`
	Token       Text            `json:"token"`
}

// WebhookEvent is the identity-check callback. Code 7002 means the applicant
// finished and submitted the current step.
type WebhookEvent struct {
	ID         Text `json:"id"`
	Action     Text `json:"action"`
	Code       Text `json:"code"`
	VendorData Text `json:"vendorData"`
}

type FormField struct {
	Key   string          `json:"key"`
	Label string          `json:"label"`
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

type FormData struct {
	FormID    string      `json:"formId"`
	FormName  string      `json:"formName"`
	CreatedAt *time.Time  `json:"createdAt"`
	Fields    []FormField `json:"fields"`
}

type SaveToXanoRequest struct {
	WebhookID Text      `json:"webhookId" validate:"required"`
	Event     Text      `json:"event" validate:"required"`
	Data      *FormData `json:"data" validate:"required"`
}
