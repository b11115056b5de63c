package notify

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublish_DeliversToSubscribers(t *testing.T) {
	b := NewBus()
	defer b.Close()

	var got []Notification
	unsubscribe := b.Subscribe(func(n Notification) { got = append(got, n) })

	id := b.Success(`"Soup" saved to your collection`)
	require.Len(t, got, 1)
	assert.Equal(t, id, got[0].ID)
	assert.Equal(t, KindSuccess, got[0].Kind)
	assert.Equal(t, DefaultDuration, got[0].Duration)

	unsubscribe()
	unsubscribe()
	b.Info("ignored")
	assert.Len(t, got, 1)
}

func TestDismiss(t *testing.T) {
	b := NewBus()
	defer b.Close()

	first := b.Error("Failed to save recipe")
	second := b.Info("hello")
	require.Len(t, b.Active(), 2)

	b.Dismiss(first)
	b.Dismiss(9999)

	active := b.Active()
	require.Len(t, active, 1)
	assert.Equal(t, second, active[0].ID)
}

func TestNotificationsExpire(t *testing.T) {
	b := NewBus()
	defer b.Close()

	b.Publish(KindInfo, "short", 10*time.Millisecond)
	assert.Eventually(t, func() bool { return len(b.Active()) == 0 }, time.Second, 5*time.Millisecond)
}

func TestClose(t *testing.T) {
	b := NewBus()
	called := false
	b.Subscribe(func(Notification) { called = true })
	b.Info("before")
	called = false

	b.Close()
	assert.Zero(t, b.Publish(KindInfo, "after", 0))
	assert.False(t, called)
	assert.Empty(t, b.Active())
}

func TestConcurrentPublishers(t *testing.T) {
	b := NewBus()
	defer b.Close()

	var (
		mu   sync.Mutex
		seen = map[int64]bool{}
	)
	b.Subscribe(func(n Notification) {
		mu.Lock()
		seen[n.ID] = true
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.Info("x")
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 20)
	assert.Len(t, b.Active(), 20)
}
