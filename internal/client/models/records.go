package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Timestamps are kept as the backend's ISO-8601 text: both services emit
// naive datetimes that time.Time cannot round-trip without guessing a zone.

type Lead struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Company     string `json:"company,omitempty"`
	Role        string `json:"role,omitempty"`
	LinkedInURL string `json:"linkedin_url,omitempty"`
	Source      string `json:"source,omitempty"`
	CompanySize string `json:"company_size,omitempty"`
	Industry    string `json:"industry,omitempty"`
	Location    string `json:"location,omitempty"`
	Stage       string `json:"stage"`
	CreatedAt   string `json:"created_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

func (l Lead) Validate() error {
	return positiveID("id", l.ID)
}

type Leads []Lead

func (l Leads) Validate() error { return ValidateAll(l) }

// EmailTemplate is one step of a campaign's email sequence.
type EmailTemplate struct {
	ID              int64  `json:"id,omitempty"`
	SequenceOrder   int    `json:"sequence_order"`
	SubjectTemplate string `json:"subject_template"`
	BodyTemplate    string `json:"body_template"`
	SendDelayHours  int    `json:"send_delay_hours"`
	IsFollowUp      bool   `json:"is_follow_up"`
}

func (e EmailTemplate) Validate() error {
	if e.SequenceOrder < 1 {
		return &ValidationError{Field: "sequence_order", Reason: "must start at 1"}
	}
	if e.SendDelayHours < 0 {
		return &ValidationError{Field: "send_delay_hours", Reason: "must not be negative"}
	}
	if err := required("subject_template", strings.TrimSpace(e.SubjectTemplate)); err != nil {
		return err
	}
	return required("body_template", strings.TrimSpace(e.BodyTemplate))
}

type Campaign struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Offer     string          `json:"offer"`
	Status    string          `json:"status"`
	CreatedAt string          `json:"created_at,omitempty"`
	UpdatedAt string          `json:"updated_at,omitempty"`
	Emails    []EmailTemplate `json:"emails,omitempty"`
}

// Validate checks identity only; templates are server-owned and kept in the
// order received.
func (c Campaign) Validate() error {
	if err := positiveID("id", c.ID); err != nil {
		return err
	}
	return required("name", c.Name)
}

type Campaigns []Campaign

func (c Campaigns) Validate() error { return ValidateAll(c) }

type CallNote struct {
	ID        int64  `json:"id"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at,omitempty"`
}

type CallSession struct {
	ID        int64          `json:"id"`
	Email     string         `json:"email,omitempty"`
	Phone     string         `json:"phone,omitempty"`
	Status    string         `json:"status"`
	Purpose   string         `json:"purpose,omitempty"`
	Context   map[string]any `json:"context,omitempty"`
	CreatedAt string         `json:"created_at,omitempty"`
	Notes     []CallNote     `json:"notes,omitempty"`
}

func (c CallSession) Validate() error {
	if err := positiveID("id", c.ID); err != nil {
		return err
	}
	return required("status", c.Status)
}

type CallSessions []CallSession

func (c CallSessions) Validate() error { return ValidateAll(c) }

// CallEvent is a timeline entry of a call; Payload is opaque.
type CallEvent struct {
	ID        int64           `json:"id"`
	CallID    int64           `json:"call_id"`
	EventType string          `json:"event_type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	CreatedAt string          `json:"created_at,omitempty"`
}

func (e CallEvent) Validate() error {
	if err := positiveID("id", e.ID); err != nil {
		return err
	}
	return required("event_type", e.EventType)
}

type CallEvents []CallEvent

func (e CallEvents) Validate() error { return ValidateAll(e) }

// Recipient is a lead's enrollment state within a campaign.
type Recipient struct {
	ID           int64  `json:"id"`
	CampaignID   int64  `json:"campaign_id"`
	LeadID       int64  `json:"lead_id"`
	Email        string `json:"email,omitempty"`
	Name         string `json:"name,omitempty"`
	Company      string `json:"company,omitempty"`
	Status       string `json:"status,omitempty"`
	CurrentStep  int    `json:"current_step"`
	LastSentAt   string `json:"last_sent_at,omitempty"`
	NextSendAt   string `json:"next_send_at,omitempty"`
	Paused       bool   `json:"paused"`
	VariantLabel string `json:"variant_label,omitempty"`
}

func (r Recipient) Validate() error {
	return positiveID("id", r.ID)
}

// State is the enrollment status, derived from Paused when the backend
// does not send one.
func (r Recipient) State() string {
	switch {
	case r.Status != "":
		return r.Status
	case r.Paused:
		return "paused"
	default:
		return "enrolled"
	}
}

func (r Recipient) String() string {
	return fmt.Sprintf("#%d %s step %d (%s)", r.ID, r.Email, r.CurrentStep, r.State())
}

type Recipients []Recipient

func (r Recipients) Validate() error { return ValidateAll(r) }

type RecipientEvent struct {
	ID          int64           `json:"id"`
	RecipientID int64           `json:"recipient_id"`
	EventType   string          `json:"event_type"`
	Payload     json.RawMessage `json:"payload,omitempty"`
	CreatedAt   string          `json:"created_at,omitempty"`
}

func (e RecipientEvent) Validate() error {
	if err := positiveID("id", e.ID); err != nil {
		return err
	}
	return required("event_type", e.EventType)
}

type RecipientEvents []RecipientEvent

func (e RecipientEvents) Validate() error { return ValidateAll(e) }
