package services

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// FCMPushSender delivers push notifications through Firebase Cloud
// Messaging. Devices subscribe to a per-user topic at login, so delivery
// does not need a server-side token registry.
type FCMPushSender struct {
	app *firebase.App
}

func NewFCMPushSender(ctx context.Context, credentialsFile string) (*FCMPushSender, error) {
	opt := option.WithCredentialsFile(credentialsFile)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing app: %v", err)
	}
	return &FCMPushSender{app: app}, nil
}

func (s *FCMPushSender) Send(ctx context.Context, userID, title, body string) error {
	client, err := s.app.Messaging(ctx)
	if err != nil {
		return fmt.Errorf("error getting Messaging client: %v", err)
	}

	message := &messaging.Message{
		Topic: "user-" + userID,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
	}
	_, err = client.Send(ctx, message)
	return err
}
