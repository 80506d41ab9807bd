// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/tasknest/internal/platform/sec"
)

// # Event Payloads

// UserRegistered is published on the "user.registered" queue.
type UserRegistered struct {
	UserID     string       `json:"user_id"`
	Username   string       `json:"username"`
	Email      string       `json:"email"`
	Role       sec.UserRole `json:"role"`
	OccurredAt time.Time    `json:"occurred_at"`
}

// PasswordResetRequested is published on the "password.reset_requested" queue.
// The mailer consuming it delivers ResetToken to Email.
type PasswordResetRequested struct {
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	ResetToken string    `json:"reset_token"`
	ExpiresAt  time.Time `json:"expires_at"`
	OccurredAt time.Time `json:"occurred_at"`
}

// publish sends an event without failing the calling flow.
func (service *Service) publish(context context.Context, topic string, payload any) {
	if service.events == nil {
		return
	}
	if err := service.events.Publish(context, topic, payload); err != nil {
		service.logger.WarnContext(context, "auth_event_publish_failed",
			slog.String("topic", topic),
			slog.Any("error", err),
		)
	}
}

// record counts a flow outcome when metrics are wired.
func (service *Service) record(event string, err error) {
	if service.recorder == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	service.recorder.AuthEvent(event, outcome)
}
