package service

import "context"

// Notification is a short user-visible confirmation, e.g. a toast.
type Notification struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// LogNotifier writes notifications to the service log.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, n Notification) {
	logger.Info().Str("title", n.Title).Msg(n.Message)
}
