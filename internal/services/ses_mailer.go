package services

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/sirupsen/logrus"
)

// SESAPI is the subset of the SES client the mailer uses.
type SESAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESMailer implements email sending via AWS SES
type SESMailer struct {
	client SESAPI
	logger *logrus.Entry
}

// NewSESMailer creates a new AWS SES mailer
func NewSESMailer(client SESAPI) *SESMailer {
	return &SESMailer{
		client: client,
		logger: logrus.WithField("component", "ses_mailer"),
	}
}

// Send sends an email via AWS SES
func (m *SESMailer) Send(ctx context.Context, message *Message) error {
	source := message.From
	if message.FromName != "" {
		source = fmt.Sprintf("%s <%s>", message.FromName, message.From)
	}

	destination := &types.Destination{
		ToAddresses: []string{message.To},
	}
	if len(message.CC) > 0 {
		destination.CcAddresses = message.CC
	}

	input := &ses.SendEmailInput{
		Source:      aws.String(source),
		Destination: destination,
		Message: &types.Message{
			Subject: &types.Content{
				Charset: aws.String("UTF-8"),
				Data:    aws.String(message.Subject),
			},
			Body: &types.Body{
				Html: &types.Content{
					Charset: aws.String("UTF-8"),
					Data:    aws.String(message.BodyHTML),
				},
			},
		},
	}

	result, err := m.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("SES send failed: %w", err)
	}

	m.logger.WithFields(logrus.Fields{
		"message_id": aws.ToString(result.MessageId),
		"to":         message.To,
	}).Info("email accepted by SES")
	return nil
}

// GetName returns the mailer name
func (m *SESMailer) GetName() string {
	return "AWS SES"
}
