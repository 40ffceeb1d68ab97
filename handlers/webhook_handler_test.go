package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testWebhookKey = []byte("kickoff-webhook-signing-key")

func testWebhookSecret() string {
	return "whsec_" + base64.StdEncoding.EncodeToString(testWebhookKey)
}

func signWebhook(id string, ts time.Time, body string) string {
	mac := hmac.New(sha256.New, testWebhookKey)
	mac.Write([]byte(id + "." + strconv.FormatInt(ts.Unix(), 10) + "." + body))
	return "v1," + base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func webhookRequest(body, id string, ts time.Time, signature string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/webhooks/clerk", strings.NewReader(body))
	req.Header.Set("svix-id", id)
	req.Header.Set("svix-timestamp", strconv.FormatInt(ts.Unix(), 10))
	req.Header.Set("svix-signature", signature)
	return req
}

func TestVerifyWebhookSignature(t *testing.T) {
	now := time.Unix(1760000000, 0)
	h := NewWebhookHandler(nil, testWebhookSecret())
	h.now = func() time.Time { return now }

	body := `{"type":"session.created","object":"event","data":{}}`

	tests := []struct {
		name      string
		ts        time.Time
		signature string
		want      bool
	}{
		{"valid", now, signWebhook("msg_1", now, body), true},
		{"valid among several", now, "v1,bogus " + signWebhook("msg_1", now, body), true},
		{"tampered body", now, signWebhook("msg_1", now, body+" "), false},
		{"stale timestamp", now.Add(-10 * time.Minute), signWebhook("msg_1", now.Add(-10*time.Minute), body), false},
		{"wrong version", now, strings.Replace(signWebhook("msg_1", now, body), "v1,", "v2,", 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := webhookRequest(body, "msg_1", tt.ts, tt.signature)
			assert.Equal(t, tt.want, h.verifyWebhookSignature(req.Header, []byte(body)))
		})
	}
}

func TestVerifyWebhookSignature_MissingHeaders(t *testing.T) {
	h := NewWebhookHandler(nil, testWebhookSecret())
	req := httptest.NewRequest(http.MethodPost, "/webhooks/clerk", nil)

	assert.False(t, h.verifyWebhookSignature(req.Header, nil))
}

func TestHandleClerkWebhook(t *testing.T) {
	now := time.Now()
	h := NewWebhookHandler(nil, testWebhookSecret())

	t.Run("unhandled event is acknowledged", func(t *testing.T) {
		body := `{"type":"session.created","object":"event","data":{"id":"sess_1"}}`
		rec := httptest.NewRecorder()

		h.HandleClerkWebhook(rec, webhookRequest(body, "msg_2", now, signWebhook("msg_2", now, body)))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true}`, rec.Body.String())
	})

	t.Run("bad signature", func(t *testing.T) {
		body := `{"type":"user.deleted","object":"event","data":{"id":"user_1"}}`
		rec := httptest.NewRecorder()

		h.HandleClerkWebhook(rec, webhookRequest(body, "msg_3", now, "v1,AAAA"))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed payload", func(t *testing.T) {
		body := `{"type":`
		rec := httptest.NewRecorder()

		h.HandleClerkWebhook(rec, webhookRequest(body, "msg_4", now, signWebhook("msg_4", now, body)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
