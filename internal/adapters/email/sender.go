// Package email sends admin notification mail over SMTP.
package email

import (
	"fmt"
	"net/smtp"
)

type Sender struct {
	host string
	port string
	user string
	pass string
	from string
}

func NewSender(host, port, user, pass, from string) *Sender {
	if from == "" {
		from = user
	}
	return &Sender{host: host, port: port, user: user, pass: pass, from: from}
}

// Enabled reports whether SMTP is configured. When disabled, callers log the
// notification instead of sending it.
func (s *Sender) Enabled() bool { return s.host != "" && s.user != "" }

func (s *Sender) Send(to, subject, body string) error {
	msg := []byte(
		fmt.Sprintf("From: %s\r\n", s.from) +
			fmt.Sprintf("To: %s\r\n", to) +
			fmt.Sprintf("Subject: %s\r\n", subject) +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/plain; charset=\"utf-8\"\r\n" +
			"\r\n" +
			body + "\r\n",
	)

	addr := s.host + ":" + s.port
	auth := smtp.PlainAuth("", s.user, s.pass, s.host)
	if err := smtp.SendMail(addr, auth, s.from, []string{to}, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
