package pubsub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestPublishInOrder(t *testing.T) {
	b := New[int](nil)
	var got []string
	b.Subscribe(func(v int) { got = append(got, "a") })
	b.Subscribe(func(v int) { got = append(got, "b") })

	b.Publish(1)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestUnsubscribe(t *testing.T) {
	b := New[string](nil)
	var n int
	cancel := b.Subscribe(func(string) { n++ })
	b.Publish("x")
	cancel()
	cancel()
	b.Publish("y")
	assert.Equal(t, 1, n)
	assert.Equal(t, 0, b.Len())
}

func TestPanickingHandlerIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	b := New[int](zap.New(core))
	var delivered bool
	b.Subscribe(func(int) { panic("boom") })
	b.Subscribe(func(int) { delivered = true })

	assert.NotPanics(t, func() { b.Publish(1) })
	assert.True(t, delivered)
	assert.Equal(t, 1, logs.FilterMessage("panic in subscriber").Len())
}

func TestClose(t *testing.T) {
	b := New[int](nil)
	var n int
	b.Subscribe(func(int) { n++ })
	b.Close()
	b.Publish(1)
	b.Subscribe(func(int) { n++ })()
	b.Publish(2)
	assert.Equal(t, 0, n)
	assert.Equal(t, 0, b.Len())
}
