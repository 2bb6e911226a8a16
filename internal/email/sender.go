package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"fairway_backend/internal/logger"
)

type Config struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string
}

func (c Config) Configured() bool {
	return c.SMTPHost != "" && c.FromEmail != ""
}

// Sender delivers transactional mail. Missing SMTP configuration yields a
// no-op sender that logs instead of failing.
type Sender interface {
	SendTournamentInvite(to, tournamentName, code string) error
}

func NewSender(cfg Config) Sender {
	if !cfg.Configured() {
		logger.Warn("SMTP not configured, email invites disabled")
		return &noopSender{}
	}
	return &smtpSender{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		cfg:    cfg,
	}
}

type smtpSender struct {
	dialer *gomail.Dialer
	cfg    Config
}

func (s *smtpSender) SendTournamentInvite(to, tournamentName, code string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.FromEmail, s.cfg.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("You're invited to %s", tournamentName))
	m.SetBody("text/plain", fmt.Sprintf(
		"You've been invited to the golf tournament %q.\n\nJoin with code: %s\n",
		tournamentName, code,
	))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send invite email: %w", err)
	}
	return nil
}

type noopSender struct{}

func (n *noopSender) SendTournamentInvite(to, tournamentName, code string) error {
	logger.Info("invite email skipped (SMTP not configured)", "to", to, "tournament", tournamentName)
	return nil
}
