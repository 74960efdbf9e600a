package email

import (
	mail "gopkg.in/mail.v2"
)

type SMTPSender struct {
	dialer   *mail.Dialer
	from     string
	fromName string
}

func NewSMTPSender(host string, port int, user, pass, from, fromName string) *SMTPSender {
	d := mail.NewDialer(host, port, user, pass)
	d.StartTLSPolicy = mail.OpportunisticStartTLS

	return &SMTPSender{dialer: d, from: from, fromName: fromName}
}

func (s *SMTPSender) Deliver(job EmailJob) error {
	m := mail.NewMessage()
	m.SetAddressHeader("From", s.from, s.fromName)
	m.SetAddressHeader("To", job.To, job.Name)
	m.SetHeader("Subject", job.Subject)
	m.SetBody("text/plain", job.Body)

	return s.dialer.DialAndSend(m)
}
