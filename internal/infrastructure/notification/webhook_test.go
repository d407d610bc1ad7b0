package notification

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/billfold/backend/internal/domain/scheduling"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testNotification() scheduling.Notification {
	return scheduling.Notification{
		Kind:        "appointment_created",
		AccountID:   uuid.New(),
		ClientID:    uuid.New(),
		Subject:     "Appointment confirmed",
		Body:        "See you on Tuesday at 10:00.",
		ReferenceID: uuid.New(),
	}
}

func TestWebhookNotifier_Notify(t *testing.T) {
	t.Run("posts the notification as JSON", func(t *testing.T) {
		var received scheduling.Notification
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		notifier := NewWebhookNotifier(Config{URL: server.URL, Timeout: time.Second, MaxRetries: 0}, zap.NewNop())
		notification := testNotification()

		err := notifier.Notify(context.Background(), notification)

		require.NoError(t, err)
		assert.Equal(t, notification.Kind, received.Kind)
		assert.Equal(t, notification.ClientID, received.ClientID)
		assert.Equal(t, notification.Subject, received.Subject)
	})

	t.Run("retries transient server errors", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 1 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		notifier := NewWebhookNotifier(Config{URL: server.URL, Timeout: time.Second, MaxRetries: 2}, zap.NewNop())
		notifier.client.RetryWaitMin = time.Millisecond
		notifier.client.RetryWaitMax = 5 * time.Millisecond

		err := notifier.Notify(context.Background(), testNotification())

		require.NoError(t, err)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("reports non-success status as an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer server.Close()

		notifier := NewWebhookNotifier(Config{URL: server.URL, Timeout: time.Second, MaxRetries: 0}, zap.NewNop())

		err := notifier.Notify(context.Background(), testNotification())
		assert.Error(t, err)
	})
}

func TestLogNotifier_Notify(t *testing.T) {
	notifier := NewLogNotifier(zap.NewNop())
	assert.NoError(t, notifier.Notify(context.Background(), testNotification()))
}
