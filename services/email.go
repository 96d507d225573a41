package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/kr/text"

	"eventplanner-api/models"
)

// EmailService sends transactional email through the Resend HTTP API.
type EmailService struct {
	apiKey    string
	fromEmail string
	client    *http.Client
}

func NewEmailService(apiKey, fromEmail string) *EmailService {
	return &EmailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		// Dispatch is the last issue phase; a hung mail API must surface as
		// a dispatch failure, not stall the request.
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Send delivers one email. htmlBody and textBody are the alternative parts.
func (s *EmailService) Send(ctx context.Context, to, subject, htmlBody, textBody string) error {
	if s.apiKey == "" {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}

	payload := map[string]interface{}{
		"from":    fmt.Sprintf("Event Planner <%s>", s.fromEmail),
		"to":      []string{to},
		"subject": subject,
		"html":    htmlBody,
		"text":    textBody,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", "https://api.resend.com/emails", bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to send email: status %d", resp.StatusCode)
	}

	return nil
}

var invitationTmpl = template.Must(template.New("invitation").Parse(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Event Invitation</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; margin: 0; padding: 20px; background-color: #f9fafb; }
        .container { max-width: 600px; margin: 0 auto; background: white; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1); }
        .header { background: linear-gradient(135deg, #0ea5e9, #3b82f6); color: white; padding: 30px; text-align: center; }
        .content { padding: 30px; }
        .event-details { background: #f8fafc; border-radius: 8px; padding: 20px; margin: 20px 0; }
        .detail-row { display: flex; margin-bottom: 12px; }
        .detail-label { font-weight: 600; color: #374151; width: 100px; }
        .detail-value { color: #6b7280; }
        .rsvp-section { text-align: center; margin: 30px 0; }
        .rsvp-buttons { display: flex; gap: 12px; justify-content: center; flex-wrap: wrap; }
        .rsvp-button { display: inline-block; padding: 12px 24px; border-radius: 8px; text-decoration: none; font-weight: 600; }
        .accept { background: #10b981; color: white; }
        .decline { background: #ef4444; color: white; }
        .maybe { background: #f59e0b; color: white; }
        .footer { background: #f8fafc; padding: 20px; text-align: center; color: #6b7280; font-size: 14px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>You're Invited!</h1>
            <p>We'd love to have you join us for this special event</p>
        </div>

        <div class="content">
            <h2>Event Details</h2>
            <div class="event-details">
                <div class="detail-row">
                    <span class="detail-label">Event:</span>
                    <span class="detail-value">{{.Name}}</span>
                </div>
                <div class="detail-row">
                    <span class="detail-label">Date:</span>
                    <span class="detail-value">{{.DateLong}}</span>
                </div>
                <div class="detail-row">
                    <span class="detail-label">Time:</span>
                    <span class="detail-value">{{.Time}}</span>
                </div>
                <div class="detail-row">
                    <span class="detail-label">Location:</span>
                    <span class="detail-value">{{.Location}}</span>
                </div>
                <div class="detail-row">
                    <span class="detail-label">Type:</span>
                    <span class="detail-value">{{.TypeLabel}}</span>
                </div>
                <div class="detail-row">
                    <span class="detail-label">Theme:</span>
                    <span class="detail-value">{{.Theme}}</span>
                </div>
            </div>

            <p>{{.Description}}</p>

            <div class="rsvp-section">
                <h3>Please let us know if you can attend</h3>
                <div class="rsvp-buttons">
                    <a href="{{.AcceptURL}}" class="rsvp-button accept">&#10003; Yes, I'll be there</a>
                    <a href="{{.MaybeURL}}" class="rsvp-button maybe">? Maybe</a>
                    <a href="{{.DeclineURL}}" class="rsvp-button decline">&#10007; Can't make it</a>
                </div>
            </div>
        </div>

        <div class="footer">
            <p>This invitation was sent via Event Planner</p>
            <p>If you have any questions, please contact the event organizer</p>
        </div>
    </div>
</body>
</html>
`))

type invitationData struct {
	Name        string
	DateLong    string
	Time        string
	Location    string
	TypeLabel   string
	Theme       string
	Description string
	AcceptURL   string
	MaybeURL    string
	DeclineURL  string
}

// ResponseURL builds the redemption link a guest clicks for one token.
func ResponseURL(baseURL, token string) string {
	return fmt.Sprintf("%s/rsvp-response?token=%s", baseURL, token)
}

// RenderInvitation composes the invitation email for an event and a freshly
// minted token batch. Returns the HTML body and a wrapped plain-text
// alternative.
func RenderInvitation(event *models.Event, batch models.TokenBatch, baseURL string) (htmlBody, textBody string, err error) {
	data := invitationData{
		Name:        event.Name,
		DateLong:    event.Date.Format("Monday, January 2, 2006"),
		Time:        event.Time,
		Location:    event.Location,
		TypeLabel:   event.Type.Label(),
		Theme:       event.Theme,
		Description: event.Description,
		AcceptURL:   ResponseURL(baseURL, batch.Accept),
		MaybeURL:    ResponseURL(baseURL, batch.Maybe),
		DeclineURL:  ResponseURL(baseURL, batch.Decline),
	}

	var buf bytes.Buffer
	if err := invitationTmpl.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("render invitation: %w", err)
	}

	// Only the free-form description needs rewrapping; the rest is one
	// field per line.
	plain := fmt.Sprintf(
		"You're invited to %s!\n\n"+
			"Date: %s\nTime: %s\nLocation: %s\nType: %s\nTheme: %s\n\n%s\n\n"+
			"Please let us know if you can attend:\n\n"+
			"Yes, I'll be there: %s\n\nMaybe: %s\n\nCan't make it: %s\n",
		data.Name, data.DateLong, data.Time, data.Location, data.TypeLabel,
		data.Theme, text.Wrap(data.Description, 72),
		data.AcceptURL, data.MaybeURL, data.DeclineURL,
	)

	return buf.String(), plain, nil
}
