package stream

import (
	"github.com/sirupsen/logrus"

	"github.com/tc2000/fantasy/models"
)

// LogHook mirrors process log records onto the live feed as "server"
// notifications. It is registered on the process logger at startup.
//
// Fire never logs and never returns an error, so a publish failure cannot
// re-enter the logger; at worst the record is silently absent from the feed.
type LogHook struct {
	bus *Bus
}

// NewLogHook creates a hook publishing to the given bus
func NewLogHook(bus *Bus) *LogHook {
	return &LogHook{bus: bus}
}

// Levels reports which log levels are mirrored. Debug stays off the feed to
// keep logging volume from churning the bounded queue.
func (h *LogHook) Levels() []logrus.Level {
	return []logrus.Level{
		logrus.PanicLevel,
		logrus.FatalLevel,
		logrus.ErrorLevel,
		logrus.WarnLevel,
		logrus.InfoLevel,
	}
}

// Fire converts a log record into a notification and publishes it through
// the same non-blocking path as domain events
func (h *LogHook) Fire(entry *logrus.Entry) error {
	details := make(map[string]any, len(entry.Data)+1)
	for k, v := range entry.Data {
		if err, ok := v.(error); ok {
			details[k] = err.Error()
			continue
		}
		details[k] = v
	}
	details["level"] = entry.Level.String()

	h.bus.Publish(models.Notification{
		Type:      models.NotificationServer,
		Message:   entry.Message,
		Details:   details,
		Timestamp: entry.Time,
	})

	return nil
}
