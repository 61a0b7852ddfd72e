package emails

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const brevoAPI = "https://api.brevo.com/v3/smtp/email"

// BrevoSendRequest matches Brevo API v3 send transactional email body.
type BrevoSendRequest struct {
	Sender      BrevoSender   `json:"sender"`
	To          []BrevoTo     `json:"to"`
	Subject     string        `json:"subject"`
	HTMLContent string        `json:"htmlContent"`
	ReplyTo     *BrevoReplyTo `json:"replyTo,omitempty"`
}

type BrevoSender struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type BrevoTo struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type BrevoReplyTo struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Sender delivers the lifecycle emails. Delivery is fire-and-forget: a failed
// send is logged by the caller and never rolls back the transition that
// triggered it. Nil = no-op.
type Sender interface {
	SendInvitationCreated(ctx context.Context, toEmail, organizerName, cafeName, inviteLink string, dates []string) error
	SendInvitationConfirmed(ctx context.Context, toEmail, cafeName, chosenDate, chosenTime string) error
	SendInvitationDeclined(ctx context.Context, toEmail, inviteeName string) error
	SendInvitationCancelled(ctx context.Context, toEmail, organizerName string) error
}

// BrevoClient sends emails via the Brevo (Sendinblue) API.
// Env: SENDINBLUE_API_KEY, MAIL_FROM. An empty API key disables sending.
type BrevoClient struct {
	APIKey   string
	MailFrom string
	Client   *http.Client
}

func (c *BrevoClient) from() string {
	if c.MailFrom != "" {
		return c.MailFrom
	}
	return "noreply@brewdate.app"
}

// send sends one email via Brevo API.
func (c *BrevoClient) send(ctx context.Context, toEmail, subject, html string) error {
	if c.APIKey == "" {
		return nil
	}
	body := BrevoSendRequest{
		Sender:      BrevoSender{Email: c.from(), Name: "brewdate"},
		To:          []BrevoTo{{Email: toEmail}},
		Subject:     subject,
		HTMLContent: html,
		ReplyTo:     &BrevoReplyTo{Email: "support@brewdate.app", Name: "brewdate Support"},
	}
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, brevoAPI, bytes.NewReader(bodyBytes))
	if err != nil {
		return err
	}
	req.Header.Set("api-key", c.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.Client == nil {
		c.Client = &http.Client{Timeout: 15 * time.Second}
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("brevo send failed: status %d", resp.StatusCode)
	}
	return nil
}

// SendInvitationCreated sends the invite link with the proposed cafe and dates.
func (c *BrevoClient) SendInvitationCreated(ctx context.Context, toEmail, organizerName, cafeName, inviteLink string, dates []string) error {
	if c.APIKey == "" {
		return nil
	}
	content := invitationCreatedContent(organizerName, cafeName, inviteLink, dates)
	subject := fmt.Sprintf("%s invited you for coffee", organizerName)
	return c.send(ctx, toEmail, subject, EmailLayout(content))
}

// SendInvitationConfirmed tells a party which slot was picked.
func (c *BrevoClient) SendInvitationConfirmed(ctx context.Context, toEmail, cafeName, chosenDate, chosenTime string) error {
	if c.APIKey == "" {
		return nil
	}
	content := invitationConfirmedContent(cafeName, chosenDate, chosenTime)
	return c.send(ctx, toEmail, "Your coffee date is confirmed", EmailLayout(content))
}

// SendInvitationDeclined tells the organizer the invitee passed.
func (c *BrevoClient) SendInvitationDeclined(ctx context.Context, toEmail, inviteeName string) error {
	if c.APIKey == "" {
		return nil
	}
	if inviteeName == "" {
		inviteeName = "Your invitee"
	}
	content := invitationDeclinedContent(inviteeName)
	return c.send(ctx, toEmail, "Your coffee invitation was declined", EmailLayout(content))
}

// SendInvitationCancelled tells the invitee the organizer called it off.
func (c *BrevoClient) SendInvitationCancelled(ctx context.Context, toEmail, organizerName string) error {
	if c.APIKey == "" {
		return nil
	}
	content := invitationCancelledContent(organizerName)
	return c.send(ctx, toEmail, "Coffee meetup cancelled", EmailLayout(content))
}

func invitationCreatedContent(organizerName, cafeName, inviteLink string, dates []string) string {
	var items strings.Builder
	for _, d := range dates {
		items.WriteString("<li>" + EscapeHTML(d) + "</li>")
	}
	return fmt.Sprintf(`
    <h1>%s wants to grab coffee with you</h1>
    <p>You've been invited for a coffee at <strong>%s</strong>. These dates are on the table:</p>
    <ul>%s</ul>
    <p>Pick the date and time that works for you:</p>
    <center>
      <a href="%s" class="brew-button">Pick a Time</a>
    </center>
    <p style="margin-top:20px;font-size:14px;color:#666;">
      This invitation link will expire in 7 days. If you were not expecting this invitation, you can safely ignore this email.
    </p>
    <p>— The brewdate Team</p>
`, EscapeHTML(organizerName), EscapeHTML(cafeName), items.String(), inviteLink)
}

func invitationConfirmedContent(cafeName, chosenDate, chosenTime string) string {
	return fmt.Sprintf(`
    <h1>It's a (coffee) date!</h1>
    <p>The meetup is confirmed for <strong>%s at %s</strong>.</p>
    <p>You'll meet at <strong>%s</strong>. See you there!</p>
    <p>— The brewdate Team</p>
`, EscapeHTML(chosenDate), EscapeHTML(chosenTime), EscapeHTML(cafeName))
}

func invitationDeclinedContent(inviteeName string) string {
	return fmt.Sprintf(`
    <h1>No coffee this time</h1>
    <p><strong>%s</strong> declined your coffee invitation.</p>
    <p>Don't take it personally — pick another cafe and try a new set of dates.</p>
    <p>— The brewdate Team</p>
`, EscapeHTML(inviteeName))
}

func invitationCancelledContent(organizerName string) string {
	return fmt.Sprintf(`
    <h1>Meetup cancelled</h1>
    <p><strong>%s</strong> has cancelled the coffee meetup. The invitation link no longer works.</p>
    <p>— The brewdate Team</p>
`, EscapeHTML(organizerName))
}
