// Package resendad relays contact inquiries by email through Resend.
package resendad

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/resend/resend-go/v2"

	"bonsplans/internal/adapters/observability"
	"bonsplans/internal/domain"
)

var inquiryHTML = template.Must(template.New("inquiry").Parse(`
<h2>Nouvelle demande de collaboration</h2>
<p><strong>Nom :</strong> {{.Name}}</p>
<p><strong>Email :</strong> {{.Email}}</p>
<p><strong>Téléphone :</strong> {{if .Phone}}{{.Phone}}{{else}}Non renseigné{{end}}</p>
<p><strong>Établissement :</strong> {{.Establishment}}</p>
<hr />
<p><strong>Message :</strong></p>
<p>{{.Message}}</p>
`))

type Mailer struct {
	c        *resend.Client
	from, to string
}

func New(apiKey, from, to string) *Mailer {
	return &Mailer{c: resend.NewClient(apiKey), from: from, to: to}
}

func (m *Mailer) SendInquiry(ctx context.Context, in domain.Inquiry) error {
	body, err := RenderInquiry(in)
	if err != nil {
		return err
	}
	start := time.Now()
	_, err = m.c.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{m.to},
		ReplyTo: in.Email,
		Subject: Subject(in),
		Html:    body,
	})
	status := 200
	if err != nil {
		status = 0
	}
	observability.ObserveExternal("resend", "emails", status, time.Since(start))
	if err != nil {
		return fmt.Errorf("resend: %w", err)
	}
	return nil
}

func Subject(in domain.Inquiry) string {
	return "Nouvelle demande de collaboration — " + in.Establishment
}

// RenderInquiry builds the HTML body; user input is escaped.
func RenderInquiry(in domain.Inquiry) (string, error) {
	var buf bytes.Buffer
	if err := inquiryHTML.Execute(&buf, in); err != nil {
		return "", fmt.Errorf("render inquiry: %w", err)
	}
	return buf.String(), nil
}
