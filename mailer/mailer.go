// Package mailer sends transactional mail through SendGrid. Sends are
// best-effort from the caller's point of view: a failed notification must
// never fail the operation that triggered it, so callers log and move on.
package mailer

import (
	"context"
	"fmt"
	"os"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	html "github.com/adresse-io/signalement-api/templates/html"
)

// go generate: mockery --name Service

// Message describes one notification to deliver
type Message struct {
	To      string
	Subject string
	// Template names one of the bodies in templates/html
	Template string
	Context  map[string]interface{}
}

// Service delivers notification messages
type Service interface {
	Send(ctx context.Context, msg Message) error
}

type sendgridMailer struct {
	fromName string
	fromAddr string
}

// NewSendgrid returns a Service sending through SendGrid. The API key is read
// from SENDGRID_API_KEY at send time.
func NewSendgrid(fromName, fromAddr string) Service {
	return &sendgridMailer{fromName: fromName, fromAddr: fromAddr}
}

func (m *sendgridMailer) Send(_ context.Context, msg Message) error {
	body, err := html.Render(msg.Template, msg.Context)
	if err != nil {
		return err
	}

	from := mail.NewEmail(m.fromName, m.fromAddr)
	to := mail.NewEmail("", msg.To)
	message := mail.NewSingleEmail(from, msg.Subject, to, msg.Subject, body)

	client := sendgrid.NewSendClient(os.Getenv("SENDGRID_API_KEY"))
	response, err := client.Send(message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid responded %d: %s", response.StatusCode, response.Body)
	}
	return nil
}
