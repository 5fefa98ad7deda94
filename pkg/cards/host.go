package cards

import (
	"log/slog"

	"github.com/goliatone/go-cardgen/pkg/hostconfig"
)

// Host is the environment elements consult while parsing and rendering. An
// element finds its host through its parent chain.
type Host struct {
	Config hostconfig.HostConfig
	Events *EventLog
	Logger *slog.Logger
}

// NewHost creates a host with its own event log.
func NewHost(cfg hostconfig.HostConfig) *Host {
	return &Host{
		Config: cfg.Normalize(),
		Events: NewEventLog(),
	}
}

var defaultHost = &Host{Config: hostconfig.Default()}

func (h *Host) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Warn records a validation event attributed to el and mirrors it to the
// logger.
func (h *Host) Warn(el Element, kind EventKind, message string) {
	ev := ValidationEvent{Kind: kind, Message: message}
	if el != nil {
		ev.TypeName = el.JSONTypeName()
		ev.ElementID = el.ID()
	}
	if h != nil {
		h.Events.Record(ev)
	}
	h.logger().Warn("card validation",
		slog.String("kind", kind.String()),
		slog.String("type", ev.TypeName),
		slog.String("id", ev.ElementID),
		slog.String("message", message),
	)
}

func (h *Host) classNames(names ...string) []string {
	if h == nil {
		return hostconfig.Default().ClassNames(names...)
	}
	return h.Config.ClassNames(names...)
}
