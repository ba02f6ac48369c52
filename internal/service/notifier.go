package service

import (
	"time"

	"github.com/sirupsen/logrus"
)

// NotificationLevel grades user-facing notifications.
type NotificationLevel string

const (
	NotifyInfo    NotificationLevel = "info"
	NotifyWarning NotificationLevel = "warning"
	NotifyError   NotificationLevel = "error"
)

// Notification is a transient user-facing message describing a mutation
// outcome. Observable side effect only; never part of the data contract.
type Notification struct {
	Level   NotificationLevel
	Message string
	At      time.Time
}

// Notifier delivers notifications to whatever surface the app shell offers.
type Notifier interface {
	Notify(n Notification)
}

// LogNotifier is the default sink: structured log lines.
type LogNotifier struct {
	Logger *logrus.Logger
}

func (n *LogNotifier) Notify(notification Notification) {
	entry := n.Logger.WithFields(logrus.Fields{
		"notificationLevel": notification.Level,
		"notifiedAt":        notification.At.Format(time.RFC3339),
	})

	switch notification.Level {
	case NotifyError:
		entry.Error(notification.Message)
	case NotifyWarning:
		entry.Warn(notification.Message)
	default:
		entry.Info(notification.Message)
	}
}

func notify(n Notifier, level NotificationLevel, message string) {
	if n == nil {
		return
	}
	n.Notify(Notification{Level: level, Message: message, At: time.Now()})
}
