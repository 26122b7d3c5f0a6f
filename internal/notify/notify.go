// Package notify keeps the transient notifications shown as toasts
package notify

import (
	"time"

	"github.com/charmbracelet/log"
)

// DefaultTTL is how long a notification stays up
const DefaultTTL = 4 * time.Second

// Kind is the notification severity
type Kind int

const (
	KindInfo Kind = iota
	KindSuccess
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindError:
		return "error"
	default:
		return "info"
	}
}

// ID identifies a notification
type ID uint64

// Notification is one toast
type Notification struct {
	ID      ID
	Kind    Kind
	Message string
	Created time.Time
}

// Center holds the active notifications, newest last. The UI schedules
// Expire after TTL for every ID it receives.
type Center struct {
	ttl    time.Duration
	next   ID
	items  []Notification
	logger *log.Logger
	now    func() time.Time
}

// NewCenter creates a notification center. Errors are also logged to logger
// when it is non-nil.
func NewCenter(ttl time.Duration, logger *log.Logger) *Center {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Center{ttl: ttl, logger: logger, now: time.Now}
}

// TTL returns the auto-dismiss duration
func (c *Center) TTL() time.Duration { return c.ttl }

// Notify adds a notification
func (c *Center) Notify(kind Kind, message string) Notification {
	c.next++
	n := Notification{ID: c.next, Kind: kind, Message: message, Created: c.now()}
	c.items = append(c.items, n)

	if c.logger != nil {
		switch kind {
		case KindError:
			c.logger.Error(message)
		default:
			c.logger.Debug(message, "kind", kind)
		}
	}
	return n
}

// Success adds a success notification
func (c *Center) Success(message string) Notification { return c.Notify(KindSuccess, message) }

// Error adds an error notification
func (c *Center) Error(message string) Notification { return c.Notify(KindError, message) }

// Info adds an informational notification
func (c *Center) Info(message string) Notification { return c.Notify(KindInfo, message) }

// Expire removes a notification. Unknown IDs are ignored.
func (c *Center) Expire(id ID) bool {
	for i, n := range c.items {
		if n.ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

// Active returns the live notifications, oldest first
func (c *Center) Active() []Notification {
	return c.items
}

// Latest returns the newest notification
func (c *Center) Latest() (Notification, bool) {
	if len(c.items) == 0 {
		return Notification{}, false
	}
	return c.items[len(c.items)-1], true
}
