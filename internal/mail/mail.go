package mail

import "github.com/rs/zerolog"

// Mailer hands off transactional mail. Actual delivery lives outside this
// app; the reset flow only needs somewhere to put the link.
type Mailer interface {
	SendPasswordReset(to, link string) error
}

// LogMailer writes reset links to the service log instead of sending them.
// Used in development and wherever no relay is configured.
type LogMailer struct {
	Log zerolog.Logger
}

func (m LogMailer) SendPasswordReset(to, link string) error {
	m.Log.Info().Str("to", to).Str("link", link).Msg("password reset link issued")
	return nil
}
