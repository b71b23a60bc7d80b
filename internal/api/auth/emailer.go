package auth

import (
	"fmt"
	"net/smtp"

	"prologue-backend/config"

	"github.com/rs/zerolog/log"
)

func SendVerificationEmail(to string, token string) error {
	link := fmt.Sprintf("%s/verify?token=%s", config.APP_URL, token)

	if config.SMTP_HOST == "" {
		// Dev fallback: no SMTP configured, log the link instead.
		log.Info().Str("to", to).Str("link", link).Msg("SMTP not configured, verification link logged")
		return nil
	}

	from := config.SMTP_FROM
	auth := smtp.PlainAuth("", from, config.SMTP_PASSWORD, config.SMTP_HOST)

	subject := "Verify Your Account"
	body := fmt.Sprintf("Click the following link to verify your account:\n\n%s", link)

	message := []byte("Subject: " + subject + "\r\n" +
		"From: " + from + "\r\n" +
		"To: " + to + "\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" +
		body + "\r\n")

	err := smtp.SendMail(config.SMTP_HOST+":"+config.SMTP_PORT, auth, from, []string{to}, message)
	if err != nil {
		log.Error().Err(err).Str("to", to).Msg("SMTP send failed")
	}
	return err
}
