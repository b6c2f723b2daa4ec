package notifications

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withServer(t *testing.T, status int) *[]map[string]string {
	t.Helper()
	var received []map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
			received = append(received, body)
		}
		w.WriteHeader(status)
	}))
	original := baseURL
	baseURL = srv.URL
	t.Cleanup(func() {
		srv.Close()
		baseURL = original
		initialized = false
	})
	return &received
}

func TestSendRequiresInit(t *testing.T) {
	Init("")
	assert.False(t, Enabled())
	assert.Error(t, Send("title", "message"))
}

func TestSend(t *testing.T) {
	received := withServer(t, http.StatusOK)
	Init("oven-alerts")

	require.NoError(t, Send("Hello", "world"))
	require.Len(t, *received, 1)
	assert.Equal(t, "oven-alerts", (*received)[0]["topic"])
	assert.Equal(t, "Hello", (*received)[0]["title"])
	assert.Equal(t, "world", (*received)[0]["message"])
}

func TestSendReportsBadStatus(t *testing.T) {
	withServer(t, http.StatusInternalServerError)
	Init("oven-alerts")

	assert.Error(t, Send("Hello", "world"))
}

func TestStorageProblem(t *testing.T) {
	received := withServer(t, http.StatusOK)
	Init("oven-alerts")

	StorageProblem("startup", nil)
	assert.Empty(t, *received)

	StorageProblem("startup", errors.New("slot 1 unreadable"))
	require.Len(t, *received, 1)
	assert.Equal(t, "startup: slot 1 unreadable", (*received)[0]["message"])
}
