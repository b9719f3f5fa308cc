// Package intake accepts and validates public contact submissions.
package intake

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/patrickmn/go-cache"
	"gorm.io/gorm"

	"portfolio/internal/model"
)

const (
	maxNameLen    = 100
	maxSubjectLen = 200
)

// ErrThrottled is returned when the same client submits again inside
// the cooldown window.
var ErrThrottled = errors.New("too many submissions")

// ValidationError reports which submitted fields failed and why.
// Nothing is persisted when it is returned.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	return fmt.Sprintf("invalid contact submission: %s", strings.Join(names, ", "))
}

// Submission carries the raw contact form fields.
type Submission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Handler validates submissions and persists them as unread contact
// messages.
type Handler struct {
	db       *gorm.DB
	cooldown time.Duration
	recent   *cache.Cache
}

// NewHandler builds a handler. A cooldown of zero disables throttling.
func NewHandler(db *gorm.DB, cooldown time.Duration) *Handler {
	h := &Handler{db: db, cooldown: cooldown}
	if cooldown > 0 {
		h.recent = cache.New(cooldown, 2*cooldown)
	}
	return h
}

// Submit validates sub and, when valid, persists it with read=false.
// clientKey identifies the submitting client for throttling; an empty
// key is never throttled.
func (h *Handler) Submit(ctx context.Context, clientKey string, sub Submission) (*model.ContactMessage, error) {
	if verr := validate(sub); verr != nil {
		return nil, verr
	}
	if h.recent != nil && clientKey != "" {
		if _, hit := h.recent.Get(clientKey); hit {
			return nil, ErrThrottled
		}
	}

	msg := model.ContactMessage{
		Name:    strings.TrimSpace(sub.Name),
		Email:   strings.TrimSpace(sub.Email),
		Subject: strings.TrimSpace(sub.Subject),
		Message: strings.TrimSpace(sub.Message),
		Read:    false,
	}
	if err := h.db.WithContext(ctx).Create(&msg).Error; err != nil {
		return nil, fmt.Errorf("save contact message: %w", err)
	}
	if h.recent != nil && clientKey != "" {
		h.recent.SetDefault(clientKey, struct{}{})
	}
	return &msg, nil
}

func validate(sub Submission) *ValidationError {
	fields := map[string]string{}

	name := strings.TrimSpace(sub.Name)
	switch {
	case name == "":
		fields["name"] = "name is required"
	case utf8.RuneCountInString(name) > maxNameLen:
		fields["name"] = fmt.Sprintf("name must be at most %d characters", maxNameLen)
	}

	email := strings.TrimSpace(sub.Email)
	if email == "" {
		fields["email"] = "email is required"
	} else if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		fields["email"] = "email must be a valid address"
	}

	subject := strings.TrimSpace(sub.Subject)
	switch {
	case subject == "":
		fields["subject"] = "subject is required"
	case utf8.RuneCountInString(subject) > maxSubjectLen:
		fields["subject"] = fmt.Sprintf("subject must be at most %d characters", maxSubjectLen)
	}

	if strings.TrimSpace(sub.Message) == "" {
		fields["message"] = "message is required"
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}
