package notification

import (
	"fmt"
	"strings"

	"padelwatch/config"
	"padelwatch/models"

	"gopkg.in/gomail.v2"
)

// MailNotificationService sends alerts over SMTP.
type MailNotificationService struct {
	dialer     *gomail.Dialer
	from       string
	bookingURL string
}

// NewMailNotificationService builds the production mail service from the
// application configuration.
func NewMailNotificationService() *MailNotificationService {
	cfg := config.AppConfig
	return &MailNotificationService{
		dialer:     gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		from:       cfg.FromEmail,
		bookingURL: cfg.BookingURL,
	}
}

// SendSlotAlert composes and dispatches a single alert email.
func (s *MailNotificationService) SendSlotAlert(email, date string, slots []models.Slot) error {
	if len(slots) == 0 {
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", fmt.Sprintf("Court available on %s!", date))
	m.SetBody("text/plain", AlertBody(date, slots, s.bookingURL))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send alert to %s: %w", email, err)
	}
	return nil
}

// AlertBody builds the deterministic plain-text body of an alert: one line
// per slot plus a booking call to action.
func AlertBody(date string, slots []models.Slot, bookingURL string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Good news! Courts are available on %s:\n\n", date)
	for _, slot := range slots {
		fmt.Fprintf(&b, "- %s at %s (%d min)\n", slot.CourtName, slot.StartsAt, slot.Duration)
	}
	fmt.Fprintf(&b, "\nBook fast at: %s\n", bookingURL)
	return b.String()
}
