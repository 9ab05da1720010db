// Package observe implements the one-to-many change-notification protocol
// used by the gostac entity model.
//
// Any stateful value can embed an [Observable]; anything wanting to react
// to its mutations registers an [Observer]. Notification is synchronous:
// a Notify call invokes every registered observer, in registration order,
// before it returns. Observers may mutate the observable (or attach and
// detach observers) while a notification is in flight; the registration
// list is snapshotted at notify-start, but entity state is always read
// live, so effects of earlier observers are visible to later ones within
// the same Notify call.
//
// Failures fan out rather than fail fast: when an observer returns an
// error, the remaining observers still run, and the first error is
// reported afterwards wrapped in a [*NotificationError]. This keeps
// dependents from being left stale behind a failing sibling.
package observe

import (
	"fmt"
	"reflect"
	"slices"
)

// Kind identifies the category of change carried by an Event.
type Kind string

// Event kinds emitted by the entity model.
const (
	KindCreated      Kind = "created"
	KindFieldChanged Kind = "field_changed"
	KindChildAdded   Kind = "child_added"
	KindChildRemoved Kind = "child_removed"
	KindValidated    Kind = "validated"
	KindSaved        Kind = "saved"
)

// Event is the payload passed to observers on every notification.
// Source is the entity that changed. For field changes, Field names the
// mutated field and Prev holds its previous value. For child events,
// Child is the entity that was added or removed.
type Event struct {
	Kind   Kind
	Source any
	Field  string
	Prev   any
	Child  any
}

// Observer reacts to events from an Observable it is attached to.
// Returning an error does not stop the fan-out; see [Observable.Notify].
type Observer interface {
	OnEvent(Event) error
}

// ObserverFunc adapts a function to the Observer interface. Func values
// have no identity: every Attach of an ObserverFunc registers a new
// observer, and Detach cannot remove one. Wrap the func in a pointer
// type when detachable registration is needed.
type ObserverFunc func(Event) error

// OnEvent calls f.
func (f ObserverFunc) OnEvent(ev Event) error { return f(ev) }

// Observable maintains an ordered set of observers.
// Registration order is notification order. The zero value is ready to use.
// Observable is not safe for concurrent use without external synchronization,
// matching the single-owner model of the entity tree.
type Observable struct {
	observers []observerEntry
}

// observerEntry pairs an observer with whether its dynamic type supports
// ==. Comparing interface values holding func, map, or slice types
// panics, so dedup and removal only consider comparable observers.
type observerEntry struct {
	obs         Observer
	hasIdentity bool
}

// Attach registers an observer. Re-attaching an already registered
// observer is a no-op, not an error; it keeps its original position.
// Observers of uncomparable dynamic types (such as ObserverFunc) are
// always appended, since they carry no identity to dedup on.
func (o *Observable) Attach(obs Observer) {
	if obs == nil {
		return
	}
	cmp := reflect.TypeOf(obs).Comparable()
	if cmp {
		for _, e := range o.observers {
			if e.hasIdentity && e.obs == obs {
				return
			}
		}
	}
	o.observers = append(o.observers, observerEntry{obs: obs, hasIdentity: cmp})
}

// Detach removes an observer. Detaching an absent observer is a no-op,
// as is detaching an observer of an uncomparable dynamic type.
func (o *Observable) Detach(obs Observer) {
	if obs == nil || !reflect.TypeOf(obs).Comparable() {
		return
	}
	o.observers = slices.DeleteFunc(o.observers, func(e observerEntry) bool {
		return e.hasIdentity && e.obs == obs
	})
}

// ObserverCount returns the number of registered observers.
func (o *Observable) ObserverCount() int { return len(o.observers) }

// Notify invokes every observer registered at the time of the call,
// synchronously and in registration order. All observers run even when
// earlier ones fail; the first failure is returned afterwards wrapped in
// a *NotificationError.
func (o *Observable) Notify(ev Event) error {
	// Snapshot so attach/detach during the fan-out cannot skip or
	// double-invoke an observer within this call.
	snapshot := slices.Clone(o.observers)

	var first error
	failed := 0
	for _, e := range snapshot {
		if err := e.obs.OnEvent(ev); err != nil {
			failed++
			if first == nil {
				first = err
			}
		}
	}

	if first != nil {
		return &NotificationError{Err: first, Failed: failed, Total: len(snapshot)}
	}
	return nil
}

// NotificationError reports that one or more observers failed during a
// notification fan-out. Err is the first underlying failure; all observers
// had already run by the time this error is returned.
type NotificationError struct {
	Err    error // first observer failure
	Failed int   // number of observers that failed
	Total  int   // number of observers invoked
}

// Error implements the error interface.
func (e *NotificationError) Error() string {
	return fmt.Sprintf("OBSERVER_NOTIFY: %d of %d observers failed: %v", e.Failed, e.Total, e.Err)
}

// Unwrap returns the first underlying failure for errors.Is/As.
func (e *NotificationError) Unwrap() error { return e.Err }
