package email

import (
	"fmt"
	"net/smtp"
)

// Sender sends plain text email over SMTP.
type Sender struct {
	from     string
	password string
	host     string
	port     string
}

// NewSender creates a Sender from SMTP credentials.
func NewSender(from, password, host, port string) *Sender {
	return &Sender{
		from:     from,
		password: password,
		host:     host,
		port:     port,
	}
}

// Send delivers a plain text email to a single recipient.
func (s *Sender) Send(to, subject, body string) error {
	auth := smtp.PlainAuth("", s.from, s.password, s.host)

	msg := []byte("To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" + body + "\r\n")

	address := s.host + ":" + s.port

	if err := smtp.SendMail(address, auth, s.from, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	return nil
}

// NotifyAccepted emails the original sender that their connection request
// was accepted.
func (s *Sender) NotifyAccepted(senderEmail, senderName, acceptorName string) error {
	subject := "Your connection request was accepted"
	body := fmt.Sprintf("Hi %s,\n\n%s accepted your connection request on DevConnect. Say hello!\n", senderName, acceptorName)
	return s.Send(senderEmail, subject, body)
}
