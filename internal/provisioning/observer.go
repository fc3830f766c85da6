package provisioning

import (
	"github.com/sirupsen/logrus"
)

// EventType classifies provisioning events.
type EventType string

const (
	EventPhaseStarted   EventType = "phase.started"
	EventPhaseCompleted EventType = "phase.completed"
	EventPhaseFailed    EventType = "phase.failed"

	EventResourceCreated EventType = "resource.created"
	EventResourceExists  EventType = "resource.exists"
	EventResourceFailed  EventType = "resource.failed"
	EventResourceDeleted EventType = "resource.deleted"
)

// Event is one structured provisioning event.
type Event struct {
	Type     EventType
	Phase    string
	Resource string
	Message  string
}

// Observer receives progress reports from provisioning phases.
type Observer interface {
	Printf(format string, v ...any)
	Event(event Event)
}

// LogObserver reports events through the ambient logrus logger.
type LogObserver struct {
	log *logrus.Entry
}

// NewLogObserver creates a logrus-backed observer.
func NewLogObserver() *LogObserver {
	return &LogObserver{log: logrus.WithField("component", "provisioning")}
}

// Printf implements Observer.
func (o *LogObserver) Printf(format string, v ...any) {
	o.log.Infof(format, v...)
}

// Event implements Observer.
func (o *LogObserver) Event(event Event) {
	entry := o.log.WithField("event", string(event.Type))
	if event.Phase != "" {
		entry = entry.WithField("phase", event.Phase)
	}
	if event.Resource != "" {
		entry = entry.WithField("resource", event.Resource)
	}
	switch event.Type {
	case EventPhaseFailed, EventResourceFailed:
		entry.Warn(event.Message)
	default:
		entry.Info(event.Message)
	}
}
