package utils

import (
	"fmt"
	"log"
	"sdesk/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// sendEmail delivers a single HTML email through SendGrid. When no API key is
// configured the message is logged and dropped so local runs keep working.
func sendEmail(toEmail, toName, subject, htmlBody string) error {
	if config.AppConfig.SendGridKey == "" {
		log.Printf("Email skipped (no SendGrid key): to=%s subject=%q", toEmail, subject)
		return nil
	}

	from := mail.NewEmail("Student Services", config.AppConfig.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendGridKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", toEmail, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("Failed to send email to %s, response code: %d", toEmail, resp.StatusCode)
		return fmt.Errorf("failed to send email, code: %d", resp.StatusCode)
	}

	return nil
}

// SendCredentialsEmail notifies a bulk-created user of their temporary password
func SendCredentialsEmail(email, name, password string) error {
	subject := "Your Student Services account"

	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 500px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
					<h2 style="color: #333333; text-align: center;">Welcome, %s</h2>
					<p style="font-size: 16px; color: #555555;">An account has been created for you on the Student Services portal.</p>
					<p style="font-size: 16px; color: #555555;">Temporary password:</p>
					<h1 style="text-align: center; color: #4CAF50; font-size: 28px; margin: 20px 0;">%s</h1>
					<p style="font-size: 14px; color: #999999;">Please sign in and change it right away. Do not share this password with anyone.</p>
				</div>
			</body>
		</html>
	`, name, password)

	return sendEmail(email, name, subject, body)
}

// SendCrisisAlertEmail alerts a counselor that a crisis-flagged ticket needs attention
func SendCrisisAlertEmail(email, name, ticketNumber, subject string) error {
	mailSubject := fmt.Sprintf("Crisis ticket %s needs immediate attention", ticketNumber)

	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 500px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
					<h2 style="color: #c0392b; text-align: center;">Crisis ticket flagged</h2>
					<p style="font-size: 16px; color: #555555;">Hello %s,</p>
					<p style="font-size: 16px; color: #555555;">Ticket <strong>%s</strong> was flagged by crisis detection and set to URGENT:</p>
					<p style="font-size: 16px; color: #333333; font-style: italic;">%s</p>
					<p style="font-size: 14px; color: #999999;">Please review it as soon as possible.</p>
				</div>
			</body>
		</html>
	`, name, ticketNumber, subject)

	return sendEmail(email, name, mailSubject, body)
}
