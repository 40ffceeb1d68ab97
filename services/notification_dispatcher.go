package services

import (
	"context"
	"log"
	"sync"
	"time"

	"kickoffAPI/internal/notification"
)

type PushNotificationProvider interface {
	SendPush(ctx context.Context, tokens []notification.DeviceToken, title, body string, data map[string]any) error
}

type DispatchJob struct {
	Notification *notification.Notification
	Tokens       []notification.DeviceToken
}

// NotificationDispatcher fans push jobs out to a small worker pool.
type NotificationDispatcher struct {
	pushProvider PushNotificationProvider
	workers      int
	jobQueue     chan *DispatchJob
	stopChan     chan struct{}
	stopOnce     sync.Once
	wg           sync.WaitGroup
	mu           sync.RWMutex
}

func NewNotificationDispatcher(workers, queueSize int) *NotificationDispatcher {
	d := &NotificationDispatcher{
		workers:  workers,
		jobQueue: make(chan *DispatchJob, queueSize),
		stopChan: make(chan struct{}),
	}

	d.startWorkers()
	return d
}

func (d *NotificationDispatcher) SetPushProvider(provider PushNotificationProvider) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pushProvider = provider
}

func (d *NotificationDispatcher) provider() PushNotificationProvider {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.pushProvider
}

func (d *NotificationDispatcher) startWorkers() {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
}

func (d *NotificationDispatcher) worker() {
	defer d.wg.Done()
	for {
		select {
		case job := <-d.jobQueue:
			d.processJob(job)
		case <-d.stopChan:
			return
		}
	}
}

func (d *NotificationDispatcher) processJob(job *DispatchJob) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	notif := job.Notification
	provider := d.provider()

	if provider == nil || len(job.Tokens) == 0 {
		log.Printf("Skipping push for user %s: Tokens=%d, ProviderSet=%v", notif.UserID, len(job.Tokens), provider != nil)
		return
	}

	if err := provider.SendPush(ctx, job.Tokens, notif.Title, notif.Body, notif.Data); err != nil {
		log.Printf("Push failed for user %s: %v", notif.UserID, err)
	}
}

// Dispatch queues a job, giving up after a short wait when the queue is full.
func (d *NotificationDispatcher) Dispatch(job *DispatchJob) bool {
	select {
	case d.jobQueue <- job:
		return true
	case <-d.stopChan:
		return false
	case <-time.After(5 * time.Second):
		log.Printf("Failed to queue notification for user %s: queue full", job.Notification.UserID)
		return false
	}
}

func (d *NotificationDispatcher) Stop() {
	d.stopOnce.Do(func() {
		close(d.stopChan)
	})
	d.wg.Wait()
}
