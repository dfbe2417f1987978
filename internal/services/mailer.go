package services

import "context"

// EmailSender submits one outbound email to a mail service.
type EmailSender interface {
	Send(ctx context.Context, message *Message) error
	GetName() string
}

// Message represents an email to be sent
type Message struct {
	To       string
	CC       []string
	From     string
	FromName string
	Subject  string
	BodyHTML string
}
