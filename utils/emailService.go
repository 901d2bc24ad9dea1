package utils

import (
	"fmt"
	"log"
	"time"

	"gymadmin/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail delivers an HTML email through SendGrid. When no API key is
// configured the send is skipped with a log line so local setups keep working.
func SendEmail(to []string, subject string, htmlBody string) error {
	cfg := config.AppConfig

	if cfg.SendGridKey == "" {
		log.Printf("SENDGRID_API_KEY not set, skipping email %q to %v", subject, to)
		return nil
	}

	from := mail.NewEmail("Gym Admin", cfg.EmailSender)
	client := sendgrid.NewSendClient(cfg.SendGridKey)

	for _, addr := range to {
		message := mail.NewSingleEmail(from, subject, mail.NewEmail("", addr), "", htmlBody)
		resp, err := client.Send(message)
		if err != nil {
			log.Printf("Error sending email to %s: %v", addr, err)
			return err
		}
		if resp.StatusCode >= 400 {
			log.Printf("SendGrid rejected email to %s, code: %d", addr, resp.StatusCode)
			return fmt.Errorf("failed to send email, code: %d", resp.StatusCode)
		}
	}

	return nil
}

// SendRenewalReminder emails a member whose membership lapses soon
func SendRenewalReminder(email, name, planName string, nextBillDate time.Time) {
	subject := "Your Gym Membership is Expiring Soon!"
	body := `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Membership Expiring Soon</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #2563eb;">Membership Expiring Soon</h2>
        <p>Dear ` + name + `,</p>
        <p>Your <strong>` + planName + `</strong> membership is due for renewal on <strong>` + nextBillDate.Format("January 2, 2006") + `</strong>.</p>
        <p>Please visit the front desk or renew online to keep your access uninterrupted.</p>
        <hr style="border: 1px solid #eee; margin: 20px 0;">
        <p style="font-size: 12px; color: #666;">This is an automated reminder.</p>
    </div>
</body>
</html>`

	go SendEmail([]string{email}, subject, body)
}

// SendMembershipExpiredEmail emails a member whose billing cycle has lapsed
func SendMembershipExpiredEmail(email, name, planName string) {
	subject := "Your Gym Membership Has Expired"
	body := `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Membership Expired</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #dc2626;">Membership Expired</h2>
        <p>Dear ` + name + `,</p>
        <p>Your <strong>` + planName + `</strong> membership has expired.</p>
        <p>Renew today to get back to training. We hope to see you soon!</p>
        <hr style="border: 1px solid #eee; margin: 20px 0;">
        <p style="font-size: 12px; color: #666;">This is an automated notification.</p>
    </div>
</body>
</html>`

	go SendEmail([]string{email}, subject, body)
}
