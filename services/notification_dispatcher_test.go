package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"kickoffAPI/internal/notification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingProvider struct {
	mu     sync.Mutex
	titles []string
}

func (p *recordingProvider) SendPush(ctx context.Context, tokens []notification.DeviceToken, title, body string, data map[string]any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.titles = append(p.titles, title)
	return nil
}

func (p *recordingProvider) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.titles)
}

func job(title string, tokens int) *DispatchJob {
	j := &DispatchJob{
		Notification: &notification.Notification{UserID: uuid.New(), Title: title},
	}
	for i := 0; i < tokens; i++ {
		j.Tokens = append(j.Tokens, notification.DeviceToken{Token: uuid.NewString(), Platform: "ios"})
	}
	return j
}

func TestNotificationDispatcher_SendsQueuedJobs(t *testing.T) {
	d := NewNotificationDispatcher(2, 10)
	defer d.Stop()

	provider := &recordingProvider{}
	d.SetPushProvider(provider)

	for i := 0; i < 5; i++ {
		require.True(t, d.Dispatch(job("Mexico 2-1 Canada", 1)))
	}

	assert.Eventually(t, func() bool { return provider.count() == 5 }, time.Second, 10*time.Millisecond)
}

func TestNotificationDispatcher_SkipsWithoutTokens(t *testing.T) {
	d := NewNotificationDispatcher(1, 10)
	defer d.Stop()

	provider := &recordingProvider{}
	d.SetPushProvider(provider)

	require.True(t, d.Dispatch(job("no devices", 0)))
	require.True(t, d.Dispatch(job("one device", 1)))

	assert.Eventually(t, func() bool { return provider.count() == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"one device"}, provider.titles)
}

func TestNotificationDispatcher_DispatchAfterStop(t *testing.T) {
	d := NewNotificationDispatcher(1, 0)
	d.Stop()

	assert.False(t, d.Dispatch(job("late", 1)))
}
