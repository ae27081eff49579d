package utils

import (
	"fmt"
	"os"
	"strconv"

	"dorm-reservation-backend/config"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/gomail.v2"
)

// Initialize the SMTP mailer once and store it in a global variable
var mailer *gomail.Dialer

// InitializeMailer sets up the mailer using environment variables
func InitializeMailer() {
	mailHost := os.Getenv("SMTP_HOST")
	mailPort := os.Getenv("SMTP_PORT")
	mailUser := os.Getenv("SMTP_USER")
	mailPassword := os.Getenv("SMTP_PASSWORD")

	port, err := strconv.Atoi(mailPort)
	if err != nil {
		config.Logger.Error("Invalid SMTP_PORT value, defaulting to port 25",
			zap.String("provided_port", mailPort),
			zap.Error(err),
		)
		port = 25
	}

	mailer = gomail.NewDialer(mailHost, port, mailUser, mailPassword)
	config.Logger.Info("Mailer initialized successfully")
}

// GetMailer returns the initialized mailer
func GetMailer() *gomail.Dialer {
	return mailer
}

// SendEmail sends a plain/html email and returns an error if it fails.
func SendEmail(email string, subject string, textBody string, htmlBody string) error {
	if mailer == nil {
		err := fmt.Errorf("mailer is not initialized")
		config.Logger.Error("Email send failed: mailer is not initialized",
			zap.String("to_email", email),
			zap.String("subject", subject),
			zap.Error(err),
		)
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("SMTP_FROM"))
	m.SetHeader("To", email)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", textBody)
	if htmlBody != "" {
		m.AddAlternative("text/html", htmlBody)
	}

	if err := mailer.DialAndSend(m); err != nil {
		config.Logger.Error("Failed to send email",
			zap.String("to_email", email),
			zap.String("subject", subject),
			zap.Error(err),
		)
		return err
	}

	config.Logger.Info("Email sent", zap.String("to_email", email), zap.String("subject", subject))
	return nil
}

var titleCaser = cases.Title(language.English)

// BuildReservationEmail renders the notification for a reservation whose
// status changed (or was just created as pending).
func BuildReservationEmail(roomName, dateFrom, dateTo, status string) (subject, textBody, htmlBody string) {
	statusLabel := titleCaser.String(status)
	subject = fmt.Sprintf("Reservation %s - Room %s", statusLabel, roomName)
	textBody = fmt.Sprintf(
		"Your reservation for room %s (%s to %s) is now %s.",
		roomName, dateFrom, dateTo, status,
	)
	htmlBody = fmt.Sprintf(`
		<html>
			<body>
				<p>Your reservation for room <strong>%s</strong></p>
				<p>Check-in: %s<br>Check-out: %s</p>
				<p>Status: <strong>%s</strong></p>
			</body>
		</html>
	`, roomName, dateFrom, dateTo, statusLabel)
	return subject, textBody, htmlBody
}
