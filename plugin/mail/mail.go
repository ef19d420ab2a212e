// Package mail provides one-time password email delivery.
package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"
	"github.com/pkg/errors"
)

// Config holds the SMTP configuration
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	// From is the sender address
	From string
}

// Sender delivers OTP emails.
type Sender interface {
	SendOTP(ctx context.Context, to string, otp string) error
}

// SMTPSender implements Sender over SMTP.
type SMTPSender struct {
	config *Config
	client *gomail.Client
}

// NewSMTPSender creates a new SMTP sender.
func NewSMTPSender(config *Config) (*SMTPSender, error) {
	if config == nil || config.Host == "" || config.From == "" {
		return nil, errors.New("mail host and from address are required")
	}

	opts := []gomail.Option{
		gomail.WithPort(config.Port),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
	}
	if config.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(config.Username),
			gomail.WithPassword(config.Password),
		)
	}

	client, err := gomail.NewClient(config.Host, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create mail client")
	}

	return &SMTPSender{config: config, client: client}, nil
}

// SendOTP sends the one-time password to the given address.
func (s *SMTPSender) SendOTP(ctx context.Context, to string, otp string) error {
	msg := gomail.NewMsg()
	if err := msg.From(s.config.From); err != nil {
		return errors.Wrap(err, "invalid from address")
	}
	if err := msg.To(to); err != nil {
		return errors.Wrap(err, "invalid recipient address")
	}
	msg.Subject("Your SpeakNote Remind Login Code")
	msg.SetBodyString(gomail.TypeTextHTML, otpBody(otp))

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return errors.Wrap(err, "failed to send OTP email")
	}
	return nil
}

func otpBody(otp string) string {
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; text-align: center; color: #333;">
  <h2>SpeakNote Remind - Your Login Code</h2>
  <p>Here is your one-time password to log in:</p>
  <p style="font-size: 24px; font-weight: bold; letter-spacing: 2px; color: #5e35b1;">%s</p>
  <p>This code will expire in 10 minutes.</p>
  <p style="font-size: 12px; color: #888;">If you did not request this, please ignore this email.</p>
</div>`, otp)
}

// MockSender records sent OTPs for tests.
type MockSender struct {
	Sent []SentOTP
	Err  error
}

// SentOTP is one recorded delivery.
type SentOTP struct {
	To  string
	OTP string
}

// SendOTP implements Sender.
func (m *MockSender) SendOTP(ctx context.Context, to string, otp string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, SentOTP{To: to, OTP: otp})
	return nil
}
