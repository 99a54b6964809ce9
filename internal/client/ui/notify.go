package ui

import (
	"sync"
	"time"
)

type NotificationKind string

const (
	NotifySuccess NotificationKind = "success"
	NotifyError   NotificationKind = "error"
	NotifyInfo    NotificationKind = "info"
	NotifyAdd     NotificationKind = "add"
	NotifyRemove  NotificationKind = "remove"
)

type Notification struct {
	Seq     uint64
	Kind    NotificationKind
	Message string
}

// Notifier keeps at most one visible notification. Showing a new one
// replaces the current one; each is dismissed ttl after it was shown unless
// it was already replaced.
type Notifier struct {
	sched Scheduler
	ttl   time.Duration

	mu      sync.Mutex
	seq     uint64
	current *Notification
	sinks   []func(Notification)
}

func NewNotifier(sched Scheduler, ttl time.Duration) *Notifier {
	return &Notifier{sched: sched, ttl: ttl}
}

// OnShow registers fn to receive every notification as it is shown.
func (n *Notifier) OnShow(fn func(Notification)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sinks = append(n.sinks, fn)
}

func (n *Notifier) Show(kind NotificationKind, msg string) Notification {
	n.mu.Lock()
	n.seq++
	note := Notification{Seq: n.seq, Kind: kind, Message: msg}
	n.current = &note
	sinks := append([]func(Notification){}, n.sinks...)
	n.mu.Unlock()

	for _, fn := range sinks {
		fn(note)
	}

	n.sched.AfterFunc(n.ttl, func() { n.dismiss(note.Seq) })
	return note
}

func (n *Notifier) dismiss(seq uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current != nil && n.current.Seq == seq {
		n.current = nil
	}
}

// Current returns the visible notification, if any.
func (n *Notifier) Current() (Notification, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil {
		return Notification{}, false
	}
	return *n.current, true
}
