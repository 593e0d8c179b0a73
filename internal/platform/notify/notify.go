// Package notify holds the outbound messaging adapters. The default
// implementations log instead of sending; real providers slot in behind the
// same interfaces.
package notify

import (
	"context"

	"github.com/rs/zerolog/log"
)

type LogSMSSender struct{}

func (LogSMSSender) SendOTP(_ context.Context, phone, code string) error {
	log.Info().Str("phone", phone).Str("code", code).Msg("OTP issued")
	return nil
}

type LogMailer struct{}

func (LogMailer) SendConfirmation(_ context.Context, email, token string) error {
	log.Info().Str("email", email).Str("token", token).Msg("confirmation mail queued")
	return nil
}

func (LogMailer) SendOTP(_ context.Context, email, code string) error {
	log.Info().Str("email", email).Str("code", code).Msg("OTP mail queued")
	return nil
}
