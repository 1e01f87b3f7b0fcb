package services

import (
	"context"
	"fmt"

	"tour_travels_backend/internal/models"
	"tour_travels_backend/pkg/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// SESAPI is the slice of the SES client this service uses.
type SESAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// MailerService sends the inquiry notification emails. Both sends are
// best-effort: errors are returned for logging, never surfaced to customers.
type MailerService interface {
	SendInquiryConfirmation(ctx context.Context, inquiry *models.Inquiry) error
	SendAdminAlert(ctx context.Context, inquiry *models.Inquiry) error
}

// NewSESClient builds the AWS SES client from the default credential chain.
func NewSESClient(ctx context.Context, region string) (*ses.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return ses.NewFromConfig(cfg), nil
}

type sesMailer struct {
	client     SESAPI
	fromEmail  string
	adminEmail string
}

// NewMailerService creates a MailerService backed by AWS SES.
func NewMailerService(client SESAPI, fromEmail, adminEmail string) MailerService {
	return &sesMailer{client: client, fromEmail: fromEmail, adminEmail: adminEmail}
}

func (m *sesMailer) SendInquiryConfirmation(ctx context.Context, inquiry *models.Inquiry) error {
	subject := fmt.Sprintf("Thank You for Contacting Tour & Travels - %s", inquiry.Subject)
	htmlBody := m.confirmationHTML(inquiry)
	textBody := fmt.Sprintf(`Hello %s,

Thank you for reaching out to Tour & Travels. We have received your %s inquiry:

Subject: %s

%s

Your inquiry reference is #%d. Our team will get back to you shortly.

Best regards,
Tour & Travels Team
`, inquiry.FullName, inquiry.InquiryType.Display(), inquiry.Subject, inquiry.Message, inquiry.ID)

	return m.send(ctx, inquiry.Email, subject, htmlBody, textBody)
}

func (m *sesMailer) SendAdminAlert(ctx context.Context, inquiry *models.Inquiry) error {
	phone := "Not provided"
	if inquiry.Phone != nil {
		phone = *inquiry.Phone
	}

	subject := fmt.Sprintf("New Inquiry: %s - %s", inquiry.InquiryType.Display(), inquiry.Subject)
	htmlBody := m.adminAlertHTML(inquiry, phone)
	textBody := fmt.Sprintf(`A new contact inquiry has been submitted.

Inquiry #%d
Name: %s
Email: %s
Phone: %s
Type: %s
Subject: %s

%s

Submitted at: %s
`, inquiry.ID, inquiry.FullName, inquiry.Email, phone,
		inquiry.InquiryType.Display(), inquiry.Subject, inquiry.Message,
		inquiry.CreatedAt.Format("2006-01-02 15:04:05"))

	return m.send(ctx, m.adminEmail, subject, htmlBody, textBody)
}

func (m *sesMailer) send(ctx context.Context, to, subject, htmlBody, textBody string) error {
	input := &ses.SendEmailInput{
		Source: aws.String(m.fromEmail),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Html: &types.Content{Data: aws.String(htmlBody)},
				Text: &types.Content{Data: aws.String(textBody)},
			},
		},
	}

	if _, err := m.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}

func (m *sesMailer) confirmationHTML(inquiry *models.Inquiry) string {
	return fmt.Sprintf(`<html><body style="font-family: Arial, sans-serif; color: #333;">
<h2 style="color: #1C5D99;">Thank You for Contacting Tour &amp; Travels</h2>
<p>Hello %s,</p>
<p>We have received your <strong>%s</strong> inquiry and our team will get back to you shortly.</p>
<table style="border-collapse: collapse; margin: 16px 0;">
<tr><td style="padding: 4px 12px 4px 0;"><strong>Reference</strong></td><td>#%d</td></tr>
<tr><td style="padding: 4px 12px 4px 0;"><strong>Subject</strong></td><td>%s</td></tr>
</table>
<p style="white-space: pre-line;">%s</p>
<p>Best regards,<br/>Tour &amp; Travels Team</p>
</body></html>`, inquiry.FullName, inquiry.InquiryType.Display(), inquiry.ID, inquiry.Subject, inquiry.Message)
}

func (m *sesMailer) adminAlertHTML(inquiry *models.Inquiry, phone string) string {
	return fmt.Sprintf(`<html><body style="font-family: Arial, sans-serif; color: #333;">
<h2 style="color: #B3001B;">New Contact Inquiry #%d</h2>
<table style="border-collapse: collapse; margin: 16px 0;">
<tr><td style="padding: 4px 12px 4px 0;"><strong>Name</strong></td><td>%s</td></tr>
<tr><td style="padding: 4px 12px 4px 0;"><strong>Email</strong></td><td>%s</td></tr>
<tr><td style="padding: 4px 12px 4px 0;"><strong>Phone</strong></td><td>%s</td></tr>
<tr><td style="padding: 4px 12px 4px 0;"><strong>Type</strong></td><td>%s</td></tr>
<tr><td style="padding: 4px 12px 4px 0;"><strong>Subject</strong></td><td>%s</td></tr>
<tr><td style="padding: 4px 12px 4px 0;"><strong>Submitted</strong></td><td>%s</td></tr>
</table>
<p style="white-space: pre-line;">%s</p>
</body></html>`, inquiry.ID, inquiry.FullName, inquiry.Email, phone,
		inquiry.InquiryType.Display(), inquiry.Subject,
		inquiry.CreatedAt.Format("2006-01-02 15:04:05"), inquiry.Message)
}

// logMailer is used when email delivery is disabled (local development).
type logMailer struct{}

// NewLogMailer returns a MailerService that only logs what would be sent.
func NewLogMailer() MailerService {
	return &logMailer{}
}

func (m *logMailer) SendInquiryConfirmation(_ context.Context, inquiry *models.Inquiry) error {
	utils.LogInfo("Email delivery disabled, skipping confirmation email", map[string]interface{}{
		"inquiry_id": inquiry.ID,
		"to":         inquiry.Email,
	})
	return nil
}

func (m *logMailer) SendAdminAlert(_ context.Context, inquiry *models.Inquiry) error {
	utils.LogInfo("Email delivery disabled, skipping admin alert", map[string]interface{}{
		"inquiry_id": inquiry.ID,
	})
	return nil
}
