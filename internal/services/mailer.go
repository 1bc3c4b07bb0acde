package services

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Mailer sends transactional email over SMTP. Constructed once at bootstrap
// and injected into the provisioning workflow.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer(host string, port int, user, pass string) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   user,
	}
}

// SendCredentials emails freshly generated login credentials to a newly
// provisioned identity. The send is awaited; callers decide whether a
// failure is fatal.
func (m *Mailer) SendCredentials(to, password, role string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Welcome to CareFlow Central - Your Account Details")
	msg.SetBody("text/html", credentialsEmailBody(to, password, role))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send credentials email: %w", err)
	}
	return nil
}

func credentialsEmailBody(email, password, role string) string {
	return fmt.Sprintf(`
      <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
        <h2 style="color: #2c3e50;">Welcome to CareFlow Central!</h2>

        <p>Your account has been successfully created. Here are your login credentials:</p>

        <div style="background-color: #f8f9fa; padding: 20px; border-radius: 5px; margin: 20px 0;">
          <p><strong>Email:</strong> %s</p>
          <p><strong>Password:</strong> %s</p>
          <p><strong>Role:</strong> %s</p>
        </div>

        <p>Please log in and change your password immediately after your first login.</p>

        <p>If you have any questions, please contact our support team.</p>

        <p>Best regards,<br>
        CareFlow Central Team</p>

        <hr style="margin: 30px 0; border: none; border-top: 1px solid #ddd;">
        <p style="font-size: 12px; color: #666;">
          This is an automated email. Please do not reply to this email.
        </p>
      </div>
    `, email, password, role)
}
