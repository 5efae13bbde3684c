package screen

import (
	"github.com/byxorna/wrench/pkg/api"
	"go.uber.org/zap"
)

// Level is the severity of a notification.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

func (l Level) String() string {
	return map[Level]string{
		LevelInfo:    "info",
		LevelSuccess: "success",
		LevelError:   "error",
	}[l]
}

// Notification is a short message shown to the user, like a toast.
type Notification struct {
	Level   Level
	Message string
}

// Notifier displays notifications. Implementations must be safe to call from
// any goroutine.
type Notifier interface {
	Notify(Notification)
}

type NotifierFunc func(Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// notifyError turns err into an error notification. Failures the taxonomy
// cannot place are logged as well, so nothing is lost behind a generic text.
func notifyError(n Notifier, logger *zap.Logger, op string, err error) {
	kind := api.Classify(err)
	if kind == api.KindUnknown {
		logger.Error("unexpected failure", zap.String("op", op), zap.Error(err))
	} else {
		logger.Warn("operation failed", zap.String("op", op), zap.Stringer("kind", kind), zap.Error(err))
	}
	n.Notify(Notification{Level: LevelError, Message: api.UserMessage(err)})
}
