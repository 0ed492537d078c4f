// Package mail sends outbound email over SMTP.
package mail

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"
)

type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func New(host string, port int, username, password, from string) *Mailer {
	return &Mailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

// SendOTP mails a password-reset code to a single recipient.
func (m *Mailer) SendOTP(to, code string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Tidex Password Reset OTP")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Your Tidex password reset OTP is: %s\nThis code is valid for 10 minutes.", code))
	return m.send(msg)
}

// SendAnnouncement mails an announcement to every recipient via blind copy.
func (m *Mailer) SendAnnouncement(bcc []string, subject, body string) error {
	if len(bcc) == 0 {
		return nil
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("Bcc", bcc...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	return m.send(msg)
}

func (m *Mailer) send(msg *gomail.Message) error {
	dialer := gomail.NewDialer(m.host, m.port, m.username, m.password)
	return dialer.DialAndSend(msg)
}
