package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"campusops/model"
)

// NotificationStore persists dispatch records. Every dispatch attempt writes
// a row first; the outcome is reflected by a status update on that same row.
type NotificationStore interface {
	Create(n *model.Notification) error
	SetStatus(id int, status string, sentAt *time.Time) error
}

// RecipientStore resolves dispatch recipients.
type RecipientStore interface {
	FindByID(id string) (*model.User, error)
	ActiveUserIDs() ([]string, error)
	UserIDsByRole(role string) ([]string, error)
}

// PushSender delivers a push message to a user's devices.
type PushSender interface {
	Send(ctx context.Context, userID, title, body string) error
}

// EmailSender delivers an email message.
type EmailSender interface {
	Send(to, subject, body string) error
}

// NotificationService persists and delivers notifications. Delivery is
// best-effort: a failed delivery marks the row failed and is reported as a
// boolean, never as an error that could abort the write that triggered it.
// Either sender may be nil, in which case that channel degrades to
// persist-and-mark-sent.
type NotificationService struct {
	store      NotificationStore
	recipients RecipientStore
	push       PushSender
	email      EmailSender
}

func NewNotificationService(store NotificationStore, recipients RecipientStore, push PushSender, email EmailSender) *NotificationService {
	return &NotificationService{store: store, recipients: recipients, push: push, email: email}
}

// Send persists a pending notification, attempts delivery and flips the
// persisted row to sent or failed. Returns whether the dispatch succeeded.
func (s *NotificationService) Send(ctx context.Context, userID, channel, title, body string) bool {
	n := &model.Notification{
		UserID:  userID,
		Channel: channel,
		Title:   title,
		Body:    body,
		Status:  model.NotificationStatusPending,
	}
	if err := s.store.Create(n); err != nil {
		log.Printf("notification: failed to persist for user %s: %v", userID, err)
		return false
	}

	if err := s.deliver(ctx, n); err != nil {
		log.Printf("notification %d: delivery failed: %v", n.NotificationID, err)
		if err := s.store.SetStatus(n.NotificationID, model.NotificationStatusFailed, nil); err != nil {
			log.Printf("notification %d: failed to mark failed: %v", n.NotificationID, err)
		}
		return false
	}

	now := time.Now()
	if err := s.store.SetStatus(n.NotificationID, model.NotificationStatusSent, &now); err != nil {
		log.Printf("notification %d: failed to mark sent: %v", n.NotificationID, err)
		return false
	}
	return true
}

// SendBulk dispatches each notification independently and returns the number
// of successes. Partial failure is expected and non-fatal.
func (s *NotificationService) SendBulk(ctx context.Context, items []model.Notification) int {
	sent := 0
	for _, n := range items {
		if s.Send(ctx, n.UserID, n.Channel, n.Title, n.Body) {
			sent++
		}
	}
	return sent
}

// ReportStatusChanged notifies administrators that a report moved to a new
// status.
func (s *NotificationService) ReportStatusChanged(ctx context.Context, reportID, status string) bool {
	ids, err := s.recipients.UserIDsByRole("admin")
	if err != nil || len(ids) == 0 {
		log.Printf("notification: no admin recipients for report %s: %v", reportID, err)
		return false
	}
	ok := true
	body := fmt.Sprintf("Report %s changed status to: %s", reportID, status)
	for _, id := range ids {
		if !s.Send(ctx, id, model.NotificationChannelPush, "Report update", body) {
			ok = false
		}
	}
	return ok
}

// MenuPublished broadcasts a new-menu notice to every active user.
func (s *NotificationService) MenuPublished(ctx context.Context, menuID string) bool {
	ids, err := s.recipients.ActiveUserIDs()
	if err != nil {
		log.Printf("notification: failed to resolve recipients for menu %s: %v", menuID, err)
		return false
	}
	ok := true
	for _, id := range ids {
		if !s.Send(ctx, id, model.NotificationChannelPush, "New menu available",
			"A new cafeteria menu has been published. Check the available options!") {
			ok = false
		}
	}
	return ok
}

// WellnessAlert warns a user that their check-in tripped a risk indicator.
func (s *NotificationService) WellnessAlert(ctx context.Context, userID string) bool {
	return s.Send(ctx, userID, model.NotificationChannelPush, "Wellness alert",
		"A risk indicator was detected in your wellness check-in. Consider contacting the wellness team.")
}

// EmergencyAlert acknowledges a non-anonymous emergency submission.
func (s *NotificationService) EmergencyAlert(ctx context.Context, userID, description string) bool {
	return s.Send(ctx, userID, model.NotificationChannelPush, "Emergency alert",
		fmt.Sprintf("Emergency case received: %s", description))
}

func (s *NotificationService) deliver(ctx context.Context, n *model.Notification) error {
	switch n.Channel {
	case model.NotificationChannelPush:
		if s.push == nil {
			return nil
		}
		return s.push.Send(ctx, n.UserID, n.Title, n.Body)
	case model.NotificationChannelEmail:
		if s.email == nil {
			return nil
		}
		user, err := s.recipients.FindByID(n.UserID)
		if err != nil {
			return err
		}
		return s.email.Send(user.Email, n.Title, n.Body)
	default:
		return fmt.Errorf("unknown channel %q", n.Channel)
	}
}
