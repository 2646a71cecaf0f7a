package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/automatedtaxcredits/intake-api/internal/entity"
)

const tallyPayload = `{
	"webhookId": "wh_123",
	"event": "FORM_RESPONSE",
	"data": {
		"formId": "mVd4Qk",
		"createdAt": "2024-05-01T12:30:00Z",
		"fields": [
			{"key": "question_a", "label": "First Name", "type": "INPUT_TEXT", "value": "Jane"},
			{"key": "question_b", "label": "EMAIL", "type": "INPUT_EMAIL", "value": "jane@example.com"},
			{"key": "question_c", "label": "Issue Reason", "type": "CHECKBOXES", "value": ["Levy", "Lien"]},
			{"key": "question_d", "label": "Amount Owed", "type": "INPUT_NUMBER", "value": 25000},
			{"key": "question_e", "label": "Favorite color", "type": "INPUT_TEXT", "value": "green"}
		]
	}
}`

func TestMapFormSubmission(t *testing.T) {
	var in SaveToXanoRequest
	require.NoError(t, json.Unmarshal([]byte(tallyPayload), &in))

	sub := MapFormSubmission(in)

	assert.Equal(t, "wh_123", sub.WebhookID)
	assert.Equal(t, "FORM_RESPONSE", sub.Event)
	assert.Equal(t, "mVd4Qk", sub.FormID)
	assert.Equal(t, "jane@example.com", sub.Email)
	require.NotNil(t, sub.SubmittedAt)
	assert.True(t, sub.SubmittedAt.Equal(time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)))

	assert.Equal(t, "Jane", sub.Answers["firstName"])
	assert.Equal(t, "Levy, Lien", sub.Answers["issueReason"])
	assert.Equal(t, json.Number("25000"), sub.Answers["irsOwe"])
	assert.Equal(t, "green", sub.Answers["question_e"])
}

func TestFormSubmissionExecute(t *testing.T) {
	store := new(MockFormStore)
	uc := NewFormSubmissionUseCase(store)

	var in SaveToXanoRequest
	require.NoError(t, json.Unmarshal([]byte(tallyPayload), &in))

	store.On("SaveFormSubmission", mock.Anything, mock.MatchedBy(func(s *entity.FormSubmission) bool {
		return s.WebhookID == "wh_123"
	})).Return([]byte(`{"id":9}`), nil).Once()

	out, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":9}`, string(out))

	store.On("SaveFormSubmission", mock.Anything, mock.Anything).Return(nil, errors.New("xano: status 500"))
	_, err = uc.Execute(context.Background(), in)
	assert.Equal(t, StatusUpstreamFailure, StatusFor(err))
}

func TestFormSubmissionMissingWebhookID(t *testing.T) {
	store := new(MockFormStore)
	uc := NewFormSubmissionUseCase(store)

	_, err := uc.Execute(context.Background(), SaveToXanoRequest{Event: T("FORM_RESPONSE"), Data: &FormData{}})

	assert.EqualError(t, err, "Field webhookId is required!")
	store.AssertNotCalled(t, "SaveFormSubmission", mock.Anything, mock.Anything)
}
