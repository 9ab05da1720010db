package observe

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// EntityHooks receives lifecycle events from the entity model.
//
// Hooks are a monitoring sink, not part of the notification protocol:
// they carry no error channel and must not mutate entities. Register an
// implementation at startup to forward entity activity to a logger or
// metrics backend; the default is a no-op.
type EntityHooks interface {
	// OnCreate records the construction of an entity.
	OnCreate(kind, id string)

	// OnMutate records a field mutation on an entity.
	OnMutate(kind, id, field string)

	// OnValidate records a validation pass or failure.
	OnValidate(kind, id string, err error)
}

// NoopEntityHooks is a no-op implementation of EntityHooks.
type NoopEntityHooks struct{}

func (NoopEntityHooks) OnCreate(string, string)          {}
func (NoopEntityHooks) OnMutate(string, string, string)  {}
func (NoopEntityHooks) OnValidate(string, string, error) {}

var (
	entityHooks EntityHooks = NoopEntityHooks{}
	hooksMu     sync.RWMutex
)

// SetEntityHooks registers custom entity hooks.
// This should be called once at application startup before building catalogs.
func SetEntityHooks(h EntityHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		entityHooks = h
	}
}

// Entity returns the registered entity hooks.
func Entity() EntityHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return entityHooks
}

// ResetHooks restores the no-op default.
// This is primarily useful for testing.
func ResetHooks() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	entityHooks = NoopEntityHooks{}
}

// LogHooks forwards entity events to a charmbracelet logger as structured
// key-value records.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks creates hooks writing to w at the given level.
// Timestamps are formatted as "HH:MM:SS.ms" to match the rest of the
// library's logging.
func NewLogHooks(w io.Writer, level log.Level) *LogHooks {
	return &LogHooks{
		logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// OnCreate logs entity construction at debug level.
func (h *LogHooks) OnCreate(kind, id string) {
	h.logger.Debug("entity created", "kind", kind, "id", id)
}

// OnMutate logs field mutations at debug level.
func (h *LogHooks) OnMutate(kind, id, field string) {
	h.logger.Debug("entity mutated", "kind", kind, "id", id, "field", field)
}

// OnValidate logs validation results. Failures are logged at warn level
// with the error attached.
func (h *LogHooks) OnValidate(kind, id string, err error) {
	if err != nil {
		h.logger.Warn("validation failed", "kind", kind, "id", id, "err", err)
		return
	}
	h.logger.Debug("validated", "kind", kind, "id", id)
}

// Ensure LogHooks implements EntityHooks.
var _ EntityHooks = (*LogHooks)(nil)
