package services

import (
	"github.com/sirupsen/logrus"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/config"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/models"
	"gopkg.in/gomail.v2"
)

// Notifier informs a user about work assigned to them. Delivery is
// best-effort: callers invoke it after the surrounding transaction commits
// and only log failures.
type Notifier interface {
	Notify(user models.User, subject, body string) error
}

// MailNotifier delivers notifications over SMTP.
type MailNotifier struct {
	dialer *gomail.Dialer
	sender string
}

func NewMailNotifier() *MailNotifier {
	return &MailNotifier{
		dialer: gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPSender, config.SMTPPassword),
		sender: config.SMTPSender,
	}
}

func (n *MailNotifier) Notify(user models.User, subject, body string) error {
	if user.Email == "" {
		logrus.WithField("user_id", user.ID).Warn("notification skipped: user has no email")
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", n.sender)
	msg.SetHeader("To", user.Email)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	return n.dialer.DialAndSend(msg)
}

// dispatchNotification sends and logs, never fails the caller. The change
// being announced is already committed by the time this runs.
func dispatchNotification(notifier Notifier, user models.User, subject, body string) {
	if notifier == nil {
		return
	}
	if err := notifier.Notify(user, subject, body); err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID,
			"subject": subject,
		}).WithError(err).Warn("notification dispatch failed")
	}
}
