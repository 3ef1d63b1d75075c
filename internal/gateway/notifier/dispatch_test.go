package notifier

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type captureSink struct {
	mu    sync.Mutex
	texts []string
	err   error
}

func (c *captureSink) SendText(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.texts = append(c.texts, text)
	return c.err
}

func (c *captureSink) sent() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.texts...)
}

func TestDispatcherDeliversToSink(t *testing.T) {
	sink := &captureSink{}
	d := NewDispatcher(sink)

	d.Notify("opened BTCUSDT")

	assert.Eventually(t, func() bool {
		got := sink.sent()
		return len(got) == 1 && got[0] == "opened BTCUSDT"
	}, time.Second, time.Millisecond)
}

func TestDispatcherLogOnlyWithoutSink(t *testing.T) {
	d := NewDispatcher(nil)
	assert.NotPanics(t, func() { d.Notify("no sink configured") })
}

func TestDispatcherSwallowsSinkErrors(t *testing.T) {
	sink := &captureSink{err: errors.New("telegram unreachable")}
	d := NewDispatcher(sink)

	assert.NotPanics(t, func() { d.Notify("still logged") })
	assert.Eventually(t, func() bool { return len(sink.sent()) == 1 }, time.Second, time.Millisecond)
}
