// Package service contains background and outbound integrations that
// don't belong in the request path packages.
package service

import (
	"fmt"

	"paisa/expense-api/pkg/security"

	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"
)

// Mailer is the outbound transactional mail capability. Callers treat a
// send failure as a soft outcome: registration and reset requests never
// fail because SMTP was down.
type Mailer interface {
	SendVerificationMail(to, firstName, token string) error
	SendPasswordResetMail(to, firstName, token string) error
}

// SMTPMailer sends mail through the configured SMTP relay.
type SMTPMailer struct {
	host        string
	port        int
	sender      string
	password    string
	frontendURL string
}

func NewSMTPMailer() *SMTPMailer {
	return &SMTPMailer{
		host:        viper.GetString("mail.host"),
		port:        viper.GetInt("mail.port"),
		sender:      viper.GetString("mail.sender"),
		password:    viper.GetString("mail.password"),
		frontendURL: viper.GetString("frontend.url"),
	}
}

func (m *SMTPMailer) SendVerificationMail(to, firstName, token string) error {
	code := security.TokenCode(token)
	link := fmt.Sprintf("%s/verify-email?token=%s", m.frontendURL, token)

	body := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
	<h2>Hi %s,</h2>
	<p>Thanks for creating an account! Verify your email address with one of the options below.</p>
	<div style="background: #667eea; color: white; padding: 20px; border-radius: 10px; text-align: center;">
		<h3 style="margin: 0 0 10px 0;">Your verification code</h3>
		<p style="font-size: 28px; letter-spacing: 6px; margin: 0;"><b>%s</b></p>
	</div>
	<p>Or click <a href='%s'>here</a> to verify directly.</p>
	<p>The code and link expire soon, so use them right away.</p>
</div>`, firstName, code, link)

	return m.send(to, "Verify your email", body)
}

func (m *SMTPMailer) SendPasswordResetMail(to, firstName, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", m.frontendURL, token)

	body := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
	<h2>Hi %s,</h2>
	<p>We received a request to reset your password. Click <a href='%s'>here</a> to choose a new one.</p>
	<p>If you didn't ask for this you can safely ignore this mail. The link expires soon.</p>
</div>`, firstName, link)

	return m.send(to, "Reset your password", body)
}

func (m *SMTPMailer) send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.sender)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(m.host, m.port, m.sender, m.password)

	return d.DialAndSend(msg)
}
