package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/alok9064/CarveLane/config"
)

// Mailer sends the storefront's transactional email: signup OTPs and
// contact-form notifications.
type Mailer struct {
	dialer    *gomail.Dialer
	from      string
	contactTo string
}

func New(cfg config.Config) *Mailer {
	return &Mailer{
		dialer:    gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		from:      cfg.SMTPUser,
		contactTo: cfg.ContactEmail,
	}
}

func (m *Mailer) SendOTP(to, otp string) error {
	if to == "" {
		return fmt.Errorf("recipient email is empty")
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, "CarveLane")
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Your OTP Code")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Your OTP code is %s. It is valid for only 1 minute 30 seconds.", otp))

	return m.dialer.DialAndSend(msg)
}

func (m *Mailer) SendContact(name, email, message string) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, "CarveLane Contact")
	msg.SetHeader("To", m.contactTo)
	msg.SetHeader("Subject", "New Contact Form Submission from "+name)
	msg.SetBody("text/plain", fmt.Sprintf(
		"Name: %s\nEmail: %s\n\nMessage:\n%s", name, email, message))

	return m.dialer.DialAndSend(msg)
}
