package xano

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automatedtaxcredits/intake-api/internal/entity"
)

func newTestClient(srv *httptest.Server) *Client {
	return NewClient(Endpoints{
		VerificationURL: srv.URL + "/api:verify",
		ProgressURL:     srv.URL + "/api:progress/",
		FormsURL:        srv.URL + "/api:forms",
		StagesURL:       srv.URL + "/api:stages",
	}, nil, 5*time.Second)
}

func TestPhoneVerificationRoundTrip(t *testing.T) {
	var patched map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api:verify/phone_verification/+15551234567":
			fmt.Fprint(w, `{"id":3,"phone_number":"+15551234567","code":456789}`)
		case r.Method == http.MethodGet:
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"code":"ERROR_CODE_NOT_FOUND"}`)
		case r.Method == http.MethodPatch:
			assert.Equal(t, "/api:verify/phone_verification/+15551234567", r.URL.Path)
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&patched))
			fmt.Fprint(w, `{}`)
		default:
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()
	c := newTestClient(srv)
	ctx := context.Background()

	rec, err := c.FindPhone(ctx, "+15551234567")
	require.NoError(t, err)
	assert.Equal(t, 456789, rec.Code)

	_, err = c.FindPhone(ctx, "+15550000000")
	assert.ErrorIs(t, err, entity.ErrNotFound)

	rec.Code = 222222
	require.NoError(t, c.UpdatePhone(ctx, rec))
	assert.Equal(t, float64(222222), patched["code"])
}

func TestFindPhoneParsesTextCode(t *testing.T) {
	tests := []struct {
		body string
		want int
	}{
		{`{"phone_number":"+15551234567","code":"456789"}`, 456789},
		{`{"phone_number":"+15551234567","code":" 456789abc"}`, 456789},
		{`{"phone_number":"+15551234567","code":456789.0}`, 456789},
		{`{"phone_number":"+15551234567","code":"abc"}`, 0},
		{`{"phone_number":"+15551234567","code":null}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tt.body)
			}))
			defer srv.Close()

			rec, err := newTestClient(srv).FindPhone(context.Background(), "+15551234567")

			require.NoError(t, err)
			assert.Equal(t, "+15551234567", rec.PhoneNumber)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestFindEmailNormalizesFlag(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"email":"jane@example.com","token":"tok","isVerified":1}`)
	}))
	defer srv.Close()

	rec, err := newTestClient(srv).FindEmail(context.Background(), "jane@example.com")

	require.NoError(t, err)
	assert.True(t, rec.Verified())
	assert.Equal(t, "tok", rec.Token)
}

func TestCreateEmailPostsRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api:verify/email_verification", r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"email":"jane@example.com","token":"tok","isVerified":"0"}`, string(raw))
	}))
	defer srv.Close()

	err := newTestClient(srv).CreateEmail(context.Background(), &entity.EmailVerification{
		Email: "jane@example.com", Token: "tok", IsVerified: "0",
	})

	require.NoError(t, err)
}

func TestFindProgress(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api:progress/get_user_progress", r.URL.Path)
		switch r.URL.Query().Get("email") {
		case "jane@example.com":
			fmt.Fprint(w, `{"email":"jane@example.com","currentPage":4,"formData":{"a":1},"token":"t"}`)
		default:
			fmt.Fprint(w, `null`)
		}
	}))
	defer srv.Close()
	c := newTestClient(srv)

	p, err := c.FindProgress(context.Background(), "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, "4", p.CurrentPage)
	assert.JSONEq(t, `{"a":1}`, string(p.FormData))

	_, err = c.FindProgress(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestStoreFailureIsNotNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"message":"boom"}`)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).FindEmail(context.Background(), "jane@example.com")

	require.Error(t, err)
	assert.False(t, errors.Is(err, entity.ErrNotFound))
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusInternalServerError, se.Status)
}

func TestSaveFormSubmissionPassesBodyThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api:forms/form_submission", r.URL.Path)
		var sub entity.FormSubmission
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&sub))
		assert.Equal(t, "Jane", sub.Answers["firstName"])
		fmt.Fprint(w, `{"id":42,"webhookId":"wh_1"}`)
	}))
	defer srv.Close()

	body, err := newTestClient(srv).SaveFormSubmission(context.Background(), &entity.FormSubmission{
		WebhookID: "wh_1",
		Answers:   map[string]any{"firstName": "Jane"},
	})

	require.NoError(t, err)
	assert.JSONEq(t, `{"id":42,"webhookId":"wh_1"}`, string(body))
}

func TestListStages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api:stages/get_stages", r.URL.Path)
		fmt.Fprint(w, `[{"Stage":1},{"Stage":"2"},{"Stage":null}]`)
	}))
	defer srv.Close()

	rows, err := newTestClient(srv).ListStages(context.Background())

	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, float64(1), rows[0].Stage)
	assert.Equal(t, "2", rows[1].Stage)
}
