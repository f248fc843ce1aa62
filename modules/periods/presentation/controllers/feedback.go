package controllers

import (
	"sync"

	"github.com/iota-uz/iota-periods/modules/periods/presentation/viewmodels"
)

// feedback collects what a form reports during one request: notifications
// to render, and the page to navigate to on success.
type feedback struct {
	mu     sync.Mutex
	notes  []viewmodels.Notification
	target string
}

func (f *feedback) Success(msg string) {
	f.add(viewmodels.NotificationSuccess, msg)
}

func (f *feedback) Error(msg string) {
	f.add(viewmodels.NotificationError, msg)
}

func (f *feedback) add(kind viewmodels.NotificationKind, msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notes = append(f.notes, viewmodels.Notification{Kind: kind, Message: msg})
}

func (f *feedback) Navigate(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.target = path
}

func (f *feedback) navigation() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.target, f.target != ""
}

func (f *feedback) notifications() []viewmodels.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]viewmodels.Notification, len(f.notes))
	copy(out, f.notes)
	return out
}

// flash turns the notifications into the cookie payload read by the list page.
func (f *feedback) flash() map[string]string {
	out := map[string]string{}
	for _, n := range f.notifications() {
		out[string(n.Kind)] = n.Message
	}
	return out
}

func flashNotifications(m map[string]string) []viewmodels.Notification {
	var out []viewmodels.Notification
	for _, kind := range []viewmodels.NotificationKind{viewmodels.NotificationSuccess, viewmodels.NotificationError} {
		if msg, ok := m[string(kind)]; ok && msg != "" {
			out = append(out, viewmodels.Notification{Kind: kind, Message: msg})
		}
	}
	return out
}
