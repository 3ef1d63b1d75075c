package notifier

import (
	"bfuture/internal/logger"
)

// Dispatcher fans a notification out to the configured sink and always echoes
// it to the log, so a broken Telegram setup never swallows trade outcomes.
// It satisfies the engine's Notifier interface.
type Dispatcher struct {
	sink TextNotifier // nil means log-only
}

func NewDispatcher(sink TextNotifier) *Dispatcher {
	return &Dispatcher{sink: sink}
}

// Notify delivers asynchronously; sending must never delay a trading path.
func (d *Dispatcher) Notify(text string) {
	logger.Infof("notify: %s", text)
	if d == nil || d.sink == nil {
		return
	}
	go func() {
		if err := d.sink.SendText(text); err != nil {
			logger.Warnf("notification delivery failed: %v", err)
		}
	}()
}
