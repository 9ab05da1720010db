package observe

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

type countingHooks struct {
	creates, mutates, validates int
}

func (h *countingHooks) OnCreate(string, string)          { h.creates++ }
func (h *countingHooks) OnMutate(string, string, string)  { h.mutates++ }
func (h *countingHooks) OnValidate(string, string, error) { h.validates++ }

func TestHookRegistry(t *testing.T) {
	defer ResetHooks()

	h := &countingHooks{}
	SetEntityHooks(h)

	Entity().OnCreate("Catalog", "root")
	Entity().OnMutate("Item", "i1", "geometry")
	Entity().OnValidate("Collection", "c1", nil)

	if h.creates != 1 || h.mutates != 1 || h.validates != 1 {
		t.Errorf("counts = %d/%d/%d, want 1/1/1", h.creates, h.mutates, h.validates)
	}
}

func TestSetEntityHooksNil(t *testing.T) {
	defer ResetHooks()

	SetEntityHooks(nil)
	// Registry keeps the previous hooks; calls must not panic.
	Entity().OnCreate("Catalog", "root")
}

func TestResetHooks(t *testing.T) {
	h := &countingHooks{}
	SetEntityHooks(h)
	ResetHooks()

	Entity().OnCreate("Catalog", "root")
	if h.creates != 0 {
		t.Error("reset hooks still forwarded to old implementation")
	}
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	h := NewLogHooks(&buf, log.DebugLevel)

	h.OnCreate("Catalog", "root")
	h.OnMutate("Item", "i1", "geometry")
	h.OnValidate("Collection", "c1", errors.New("bad extent"))

	out := buf.String()
	for _, want := range []string{"entity created", "entity mutated", "validation failed", "bad extent"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}
