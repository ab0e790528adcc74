package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"campusops/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeNotificationStore struct {
	rows   map[int]*model.Notification
	nextID int
}

func newFakeNotificationStore() *fakeNotificationStore {
	return &fakeNotificationStore{rows: make(map[int]*model.Notification)}
}

func (s *fakeNotificationStore) Create(n *model.Notification) error {
	s.nextID++
	n.NotificationID = s.nextID
	copied := *n
	s.rows[n.NotificationID] = &copied
	return nil
}

func (s *fakeNotificationStore) SetStatus(id int, status string, sentAt *time.Time) error {
	row, ok := s.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	row.Status = status
	if sentAt != nil {
		row.SentAt = sentAt
	}
	return nil
}

type fakeRecipients struct {
	users  map[string]*model.User
	active []string
	admins []string
}

func (r *fakeRecipients) FindByID(id string) (*model.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *fakeRecipients) ActiveUserIDs() ([]string, error) {
	return r.active, nil
}

func (r *fakeRecipients) UserIDsByRole(role string) ([]string, error) {
	if role == "admin" {
		return r.admins, nil
	}
	return nil, nil
}

type fakePushSender struct {
	sent []string
	err  error
}

func (p *fakePushSender) Send(ctx context.Context, userID, title, body string) error {
	if p.err != nil {
		return p.err
	}
	p.sent = append(p.sent, userID)
	return nil
}

type fakeEmailSender struct {
	sent []string
	err  error
}

func (e *fakeEmailSender) Send(to, subject, body string) error {
	if e.err != nil {
		return e.err
	}
	e.sent = append(e.sent, to)
	return nil
}

func TestSendPersistsThenMarksSent(t *testing.T) {
	store := newFakeNotificationStore()
	push := &fakePushSender{}
	svc := NewNotificationService(store, &fakeRecipients{}, push, nil)

	ok := svc.Send(context.Background(), "user-1", model.NotificationChannelPush, "Hello", "World")
	assert.True(t, ok)
	assert.Equal(t, []string{"user-1"}, push.sent)

	require.Len(t, store.rows, 1)
	row := store.rows[1]
	assert.Equal(t, model.NotificationStatusSent, row.Status)
	require.NotNil(t, row.SentAt)
}

func TestSendDeliveryFailureMarksFailed(t *testing.T) {
	store := newFakeNotificationStore()
	push := &fakePushSender{err: errors.New("fcm unreachable")}
	svc := NewNotificationService(store, &fakeRecipients{}, push, nil)

	ok := svc.Send(context.Background(), "user-1", model.NotificationChannelPush, "Hello", "World")
	assert.False(t, ok)

	// The pending row persists and carries the failure.
	require.Len(t, store.rows, 1)
	row := store.rows[1]
	assert.Equal(t, model.NotificationStatusFailed, row.Status)
	assert.Nil(t, row.SentAt)
}

func TestSendNilSenderDegrades(t *testing.T) {
	store := newFakeNotificationStore()
	svc := NewNotificationService(store, &fakeRecipients{}, nil, nil)

	ok := svc.Send(context.Background(), "user-1", model.NotificationChannelPush, "Hello", "World")
	assert.True(t, ok)
	assert.Equal(t, model.NotificationStatusSent, store.rows[1].Status)
}

func TestSendUnknownChannelFails(t *testing.T) {
	store := newFakeNotificationStore()
	svc := NewNotificationService(store, &fakeRecipients{}, nil, nil)

	ok := svc.Send(context.Background(), "user-1", "carrier-pigeon", "Hello", "World")
	assert.False(t, ok)
	assert.Equal(t, model.NotificationStatusFailed, store.rows[1].Status)
}

func TestSendEmailResolvesRecipientAddress(t *testing.T) {
	store := newFakeNotificationStore()
	email := &fakeEmailSender{}
	recipients := &fakeRecipients{users: map[string]*model.User{
		"user-1": {UserID: "user-1", Email: "ana@campus.edu"},
	}}
	svc := NewNotificationService(store, recipients, nil, email)

	ok := svc.Send(context.Background(), "user-1", model.NotificationChannelEmail, "Hello", "World")
	assert.True(t, ok)
	assert.Equal(t, []string{"ana@campus.edu"}, email.sent)

	// An unknown recipient fails the dispatch.
	ok = svc.Send(context.Background(), "ghost", model.NotificationChannelEmail, "Hello", "World")
	assert.False(t, ok)
	assert.Equal(t, model.NotificationStatusFailed, store.rows[2].Status)
}

func TestSendBulkCountsSuccesses(t *testing.T) {
	store := newFakeNotificationStore()
	email := &fakeEmailSender{err: errors.New("smtp down")}
	recipients := &fakeRecipients{users: map[string]*model.User{
		"user-1": {UserID: "user-1", Email: "ana@campus.edu"},
	}}
	svc := NewNotificationService(store, recipients, &fakePushSender{}, email)

	items := []model.Notification{
		{UserID: "user-1", Channel: model.NotificationChannelPush, Title: "a", Body: "b"},
		{UserID: "user-1", Channel: model.NotificationChannelEmail, Title: "a", Body: "b"},
		{UserID: "user-2", Channel: model.NotificationChannelPush, Title: "a", Body: "b"},
	}
	sent := svc.SendBulk(context.Background(), items)
	assert.Equal(t, 2, sent)
	assert.Len(t, store.rows, 3)
}

func TestReportStatusChangedNotifiesAdmins(t *testing.T) {
	store := newFakeNotificationStore()
	push := &fakePushSender{}
	recipients := &fakeRecipients{admins: []string{"admin-1", "admin-2"}}
	svc := NewNotificationService(store, recipients, push, nil)

	ok := svc.ReportStatusChanged(context.Background(), "report-1", model.ReportStatusResolved)
	assert.True(t, ok)
	assert.ElementsMatch(t, []string{"admin-1", "admin-2"}, push.sent)

	// No admins means nothing to deliver.
	svc = NewNotificationService(store, &fakeRecipients{}, push, nil)
	assert.False(t, svc.ReportStatusChanged(context.Background(), "report-1", model.ReportStatusResolved))
}

func TestMenuPublishedBroadcasts(t *testing.T) {
	store := newFakeNotificationStore()
	push := &fakePushSender{}
	recipients := &fakeRecipients{active: []string{"u1", "u2", "u3"}}
	svc := NewNotificationService(store, recipients, push, nil)

	ok := svc.MenuPublished(context.Background(), "menu-1")
	assert.True(t, ok)
	assert.Len(t, push.sent, 3)
	assert.Len(t, store.rows, 3)
}
