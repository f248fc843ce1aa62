package eventbus

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/iota-periods/pkg/logging"
)

type fetched struct {
	data interface{}
}

func bufferedLogger(level logrus.Level) (*logrus.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	log := logrus.New()
	log.SetOutput(buf)
	log.SetLevel(level)
	return log, buf
}

func TestPublisher_Publish(t *testing.T) {
	type other struct{}
	log, buf := bufferedLogger(logrus.WarnLevel)
	publisher := NewEventPublisher(log)
	publisher.Subscribe(func(e *fetched) {
		t.Error("should not be called")
	})
	publisher.Publish(&other{})

	require.Contains(t, buf.String(), "eventbus.Publish: no matching subscribers")
}

func TestPublisher_Subscribe(t *testing.T) {
	publisher := NewEventPublisher(logging.ConsoleLogger(logrus.WarnLevel))
	var got interface{}
	publisher.Subscribe(func(e *fetched) {
		got = e.data
	})
	publisher.Publish(&fetched{data: "positions"})
	require.Equal(t, "positions", got)
}

func TestMatchSignature(t *testing.T) {
	type a struct{}
	type b struct{}
	require.True(t, MatchSignature(func(e *a) {}, []interface{}{&a{}}))
	require.False(t, MatchSignature(func(e *a) {}, []interface{}{&b{}}))
	require.False(t, MatchSignature(func(e *a) {}, []interface{}{}))
	require.False(t, MatchSignature(func(e *a) {}, []interface{}{&a{}, &a{}}))
	require.True(t, MatchSignature(func(ctx context.Context) {}, []interface{}{context.Background()}))
	require.True(t, MatchSignature(func(e *a) {}, []interface{}{nil}))
}

func TestPublisher_PanicRecovery(t *testing.T) {
	log, buf := bufferedLogger(logrus.ErrorLevel)
	publisher := NewEventPublisher(log)

	calls := 0
	publisher.Subscribe(func(e *fetched) {
		panic("intentional panic for testing")
	})
	publisher.Subscribe(func(e *fetched) {
		calls++
	})

	require.NotPanics(t, func() { publisher.Publish(&fetched{data: "x"}) })
	require.Equal(t, 1, calls)
	require.Contains(t, buf.String(), "panicked")
	require.Contains(t, buf.String(), "intentional panic for testing")
}

func TestPublisher_PublishE(t *testing.T) {
	log, _ := bufferedLogger(logrus.ErrorLevel)

	t.Run("no subscribers", func(t *testing.T) {
		publisher := NewEventPublisher(log)
		require.ErrorIs(t, publisher.PublishE(&fetched{}), ErrNoSubscribers)
	})

	t.Run("handler errors are joined", func(t *testing.T) {
		publisher := NewEventPublisher(log)
		boom := errors.New("boom")
		publisher.Subscribe(func(e *fetched) error { return boom })
		publisher.Subscribe(func(e *fetched) error { return nil })
		publisher.Subscribe(func(e *fetched) { panic("bad") })

		err := publisher.PublishE(&fetched{})
		require.ErrorIs(t, err, boom)
		require.Contains(t, err.Error(), "panicked")
	})

	t.Run("invalid return type", func(t *testing.T) {
		publisher := NewEventPublisher(log)
		publisher.Subscribe(func(e *fetched) string { return "" })
		require.ErrorIs(t, publisher.PublishE(&fetched{}), ErrInvalidHandlerReturn)
	})
}

func TestPublisher_UnsubscribeAndClear(t *testing.T) {
	publisher := NewEventPublisher(nil)
	handler := func(e *fetched) {}
	publisher.Subscribe(handler)
	publisher.Subscribe(func(e *fetched, ctx context.Context) {})
	require.Equal(t, 2, publisher.SubscribersCount())

	publisher.Unsubscribe(handler)
	require.Equal(t, 1, publisher.SubscribersCount())

	publisher.Clear()
	require.Equal(t, 0, publisher.SubscribersCount())
}

func TestPublisher_ConcurrentPublishAndSubscribe(t *testing.T) {
	publisher := NewEventPublisher(nil)
	var mu sync.Mutex
	seen := 0
	publisher.Subscribe(func(e *fetched) {
		mu.Lock()
		seen++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			publisher.Publish(&fetched{})
		}()
		go func() {
			defer wg.Done()
			publisher.Subscribe(func(e *fetched, extra string) {})
		}()
	}
	wg.Wait()
	require.Equal(t, 20, seen)
}
