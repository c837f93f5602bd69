package contact

import (
	"fmt"
	"strings"

	"github.com/wolfman30/portfolio-contact/internal/notify"
)

// Placeholders substituted for absent optional fields.
const (
	PlaceholderNotProvided  = "Not provided"
	PlaceholderNotSpecified = "Not specified"
)

// Identity is the fixed sender/recipient configuration for outbound mail.
type Identity struct {
	SiteName string
	From     string
	To       string
}

// OutboundMessage is the provider-ready email derived from a valid request.
type OutboundMessage struct {
	From    string
	To      string
	ReplyTo string
	Subject string
	Body    string
}

// Email converts the message for an EmailSender.
func (m OutboundMessage) Email() notify.EmailMessage {
	return notify.EmailMessage{
		From:    m.From,
		To:      m.To,
		ReplyTo: m.ReplyTo,
		Subject: m.Subject,
		Body:    m.Body,
	}
}

const bodyTemplate = `
New project inquiry from %s

Name: %s
Company: %s
Email: %s

Project Type: %s
Timeline: %s
Budget: %s

Project Description:
%s
`

// ComposeMessage builds the outbound email. The output depends only on its
// inputs, so repeated calls produce identical messages.
func ComposeMessage(req SubmissionRequest, id Identity) OutboundMessage {
	body := fmt.Sprintf(bodyTemplate,
		id.SiteName,
		req.Name,
		orDefault(req.Company, PlaceholderNotProvided),
		req.Email,
		req.ProjectType,
		orDefault(req.Timeline, PlaceholderNotSpecified),
		orDefault(req.Budget, PlaceholderNotSpecified),
		req.Description,
	)

	return OutboundMessage{
		From:    id.From,
		To:      id.To,
		ReplyTo: req.Email,
		Subject: fmt.Sprintf("New inquiry: %s from %s", req.ProjectType, orDefault(req.Company, req.Name)),
		Body:    strings.TrimSpace(body),
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
