package notifications

import "log/slog"

// EmailSender delivers registration confirmation messages. Delivery failures
// never fail the calling flow; senders are expected to log and move on.
type EmailSender interface {
	SendConfirmationEmail(email, code string) error
}

// LogSender writes outgoing mail to the log instead of delivering it.
// Used in development and tests.
type LogSender struct{}

func NewLogSender() *LogSender {
	return &LogSender{}
}

func (s *LogSender) SendConfirmationEmail(email, code string) error {
	slog.Info("confirmation email", "to", email, "code", code)
	return nil
}
