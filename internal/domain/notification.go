package domain

import (
	"encoding/json"
	"slices"
)

// Notification collects validation errors without failing fast.
//
// Entries are kept in first-insertion order. An unkeyed entry is a bare
// message stored under itself; a keyed entry is a field name mapped to its
// messages. A Notification is not safe for concurrent mutation.
type Notification struct {
	keys    []string
	entries map[string]*notificationEntry
}

type notificationEntry struct {
	keyed    bool
	messages []string
}

// NewNotification returns an empty notification.
func NewNotification() *Notification {
	return &Notification{entries: make(map[string]*notificationEntry)}
}

// AddError records an unkeyed error. Adding the same message twice is a no-op.
func (n *Notification) AddError(message string) {
	if _, ok := n.entries[message]; ok {
		return
	}

	n.put(message, &notificationEntry{messages: []string{message}})
}

// AddFieldError appends message to field unless the field already holds it.
func (n *Notification) AddFieldError(field, message string) {
	entry, ok := n.entries[field]
	if !ok {
		n.put(field, &notificationEntry{keyed: true, messages: []string{message}})
		return
	}

	if !entry.keyed {
		// An unkeyed message collides with a field name; the field wins.
		entry.keyed = true
		entry.messages = nil
	}

	if !slices.Contains(entry.messages, message) {
		entry.messages = append(entry.messages, message)
	}
}

// SetErrors overwrites the messages stored for field. With an empty field,
// each message is recorded as an independent unkeyed error.
func (n *Notification) SetErrors(field string, messages ...string) {
	if field == "" {
		for _, msg := range messages {
			n.put(msg, &notificationEntry{messages: []string{msg}})
		}

		return
	}

	n.put(field, &notificationEntry{keyed: true, messages: slices.Clone(messages)})
}

// HasErrors reports whether any error has been recorded.
func (n *Notification) HasErrors() bool {
	return len(n.entries) > 0
}

// Has reports whether key holds an entry.
func (n *Notification) Has(key string) bool {
	_, ok := n.entries[key]
	return ok
}

// Len returns the number of entries.
func (n *Notification) Len() int {
	return len(n.entries)
}

// FieldErrors returns a copy of the messages recorded under field.
func (n *Notification) FieldErrors(field string) []string {
	entry, ok := n.entries[field]
	if !ok || !entry.keyed {
		return nil
	}

	return slices.Clone(entry.messages)
}

// ClearField drops every message recorded under field.
func (n *Notification) ClearField(field string) {
	if _, ok := n.entries[field]; !ok {
		return
	}

	delete(n.entries, field)
	n.keys = slices.DeleteFunc(n.keys, func(k string) bool { return k == field })
}

// CopyErrors merges other into n with overwrite semantics per key.
func (n *Notification) CopyErrors(other *Notification) {
	if other == nil {
		return
	}

	for _, key := range other.keys {
		entry := other.entries[key]
		n.put(key, &notificationEntry{keyed: entry.keyed, messages: slices.Clone(entry.messages)})
	}
}

// ToJSON exports the entries in insertion order: unkeyed entries as bare
// strings, keyed entries as single-key maps of field to messages.
func (n *Notification) ToJSON() []any {
	out := make([]any, 0, len(n.keys))

	for _, key := range n.keys {
		entry := n.entries[key]
		if !entry.keyed {
			out = append(out, key)
			continue
		}

		out = append(out, map[string][]string{key: slices.Clone(entry.messages)})
	}

	return out
}

// MarshalJSON implements json.Marshaler.
func (n *Notification) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.ToJSON())
}

func (n *Notification) put(key string, entry *notificationEntry) {
	if n.entries == nil {
		n.entries = make(map[string]*notificationEntry)
	}

	if _, ok := n.entries[key]; !ok {
		n.keys = append(n.keys, key)
	}

	n.entries[key] = entry
}
