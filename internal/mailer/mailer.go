// Package mailer is the outbound email boundary. The production deployment
// fronts a real provider; the default implementation logs the message, which
// is enough for development and tests.
package mailer

import (
	"log/slog"
)

type Mailer interface {
	Send(to, subject, body string) error
}

// LogMailer "sends" by writing the message to the log.
type LogMailer struct{}

func (LogMailer) Send(to, subject, body string) error {
	slog.Info("==========================================")
	slog.Info("📧 EMAIL SENT TO: " + to)
	slog.Info("Subject: " + subject)
	slog.Info(body)
	slog.Info("==========================================")
	return nil
}
