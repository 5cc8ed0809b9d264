package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"
)

var (
	sentTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clubhub_mail_sent_total",
		Help: "Emails delivered successfully.",
	})
	failedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clubhub_mail_failed_total",
		Help: "Email deliveries that failed.",
	})
)

// Sender delivers a single email.
type Sender interface {
	Send(to, subject, body string) error
}

// SMTPSender sends through a plain-auth SMTP relay.
type SMTPSender struct {
	Host     string
	Port     string
	From     string
	Password string
}

// Send delivers one message.
func (s SMTPSender) Send(to, subject, body string) error {
	auth := smtp.PlainAuth("", s.From, s.Password, s.Host)
	msg := []byte("To: " + to + "\r\n" +
		"From: " + s.From + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/plain; charset=\"UTF-8\"\r\n" +
		"\r\n" + body + "\r\n")
	if err := smtp.SendMail(s.Host+":"+s.Port, auth, s.From, []string{to}, msg); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}

// Recipient is one bulk-mail target.
type Recipient struct {
	Name  string
	Email string
}

// BulkResult tallies a bulk send.
type BulkResult struct {
	Sent   int      `json:"sent"`
	Failed int      `json:"failed"`
	Total  int      `json:"total"`
	Errors []string `json:"errors,omitempty"`
}

// RenderTemplate substitutes the {{name}} placeholder for one recipient.
func RenderTemplate(message, name string) string {
	return strings.ReplaceAll(message, "{{name}}", name)
}

// Mailer sends bulk mail one recipient at a time. The loop is deliberately
// serial: the relay rate-limits, and one bad address must not sink the batch.
type Mailer struct {
	sender Sender
	log    *logrus.Logger
}

// New wires a mailer.
func New(sender Sender, log *logrus.Logger) *Mailer {
	return &Mailer{sender: sender, log: log}
}

// SendBulk delivers message to every recipient, substituting {{name}} per
// recipient, and reports per-recipient outcomes. Cancellation stops the loop
// between sends; already-delivered mail stays counted.
func (m *Mailer) SendBulk(ctx context.Context, recipients []Recipient, subject, message string) BulkResult {
	res := BulkResult{Total: len(recipients)}
	for _, r := range recipients {
		if ctx.Err() != nil {
			res.Failed = res.Total - res.Sent
			res.Errors = append(res.Errors, "cancelled before completion")
			return res
		}
		if r.Email == "" {
			res.Failed++
			res.Errors = append(res.Errors, r.Name+": no email address")
			failedTotal.Inc()
			continue
		}
		body := RenderTemplate(message, r.Name)
		if err := m.sender.Send(r.Email, subject, body); err != nil {
			m.log.WithError(err).WithField("to", r.Email).Error("bulk send failed")
			res.Failed++
			res.Errors = append(res.Errors, r.Email+": "+err.Error())
			failedTotal.Inc()
			continue
		}
		res.Sent++
		sentTotal.Inc()
	}
	return res
}
