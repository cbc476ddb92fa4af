package models

import (
	"fmt"
	"net/mail"
	"slices"
	"strings"
)

var (
	LeadStages       = []string{"new", "contacted", "qualified", "converted", "lost"}
	CampaignStatuses = []string{"active", "paused", "draft", "completed"}
	CallStatuses     = []string{"initiated", "ringing", "in_progress", "completed", "failed", "cancelled"}
)

// NewLead is the body of POST /leads/.
type NewLead struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Company     string `json:"company"`
	Role        string `json:"role"`
	LinkedInURL string `json:"linkedin_url"`
	Source      string `json:"source"`
	CompanySize string `json:"company_size"`
	Industry    string `json:"industry"`
	Location    string `json:"location"`
	Stage       string `json:"stage"`
}

func (n *NewLead) Validate() error {
	n.Name, n.Email = strings.TrimSpace(n.Name), strings.TrimSpace(n.Email)
	if err := required("name", n.Name); err != nil {
		return err
	}
	if err := required("email", n.Email); err != nil {
		return err
	}
	if _, err := mail.ParseAddress(n.Email); err != nil {
		return &ValidationError{Field: "email", Reason: "is not a valid address"}
	}
	if n.Stage == "" {
		n.Stage = "new"
	}
	if !slices.Contains(LeadStages, n.Stage) {
		return &ValidationError{Field: "stage", Reason: fmt.Sprintf("must be one of %s", strings.Join(LeadStages, ", "))}
	}
	return nil
}

// NewCampaign is the body of POST /campaigns/.
type NewCampaign struct {
	Name   string          `json:"name"`
	Offer  string          `json:"offer"`
	Status string          `json:"status"`
	Emails []EmailTemplate `json:"emails"`
}

// Validate requires a name, an offer and at least one template, and
// renumbers the templates 1..n in the given order.
func (n *NewCampaign) Validate() error {
	n.Name, n.Offer = strings.TrimSpace(n.Name), strings.TrimSpace(n.Offer)
	if err := required("name", n.Name); err != nil {
		return err
	}
	if err := required("offer", n.Offer); err != nil {
		return err
	}
	if n.Status == "" {
		n.Status = "draft"
	}
	if !slices.Contains(CampaignStatuses, n.Status) {
		return &ValidationError{Field: "status", Reason: fmt.Sprintf("must be one of %s", strings.Join(CampaignStatuses, ", "))}
	}
	if len(n.Emails) == 0 {
		return &ValidationError{Field: "emails", Reason: "at least one template is required"}
	}
	for i := range n.Emails {
		n.Emails[i].SequenceOrder = i + 1
		n.Emails[i].IsFollowUp = i > 0
	}
	return nest("emails", ValidateAll(n.Emails))
}

// EnrollRequest is the body of POST /campaigns/{id}/enroll.
type EnrollRequest struct {
	LeadIDs []int64 `json:"lead_ids"`
	SendNow bool    `json:"send_now"`
}

func (e EnrollRequest) Validate() error {
	if len(e.LeadIDs) == 0 {
		return &ValidationError{Field: "lead_ids", Reason: "at least one lead is required"}
	}
	for i, id := range e.LeadIDs {
		if err := positiveID(fmt.Sprintf("lead_ids[%d]", i), id); err != nil {
			return err
		}
	}
	return nil
}

// CallTarget is one party to dial.
type CallTarget struct {
	Email   string         `json:"email,omitempty"`
	Phone   string         `json:"phone"`
	LeadID  int64          `json:"lead_id,omitempty"`
	Context map[string]any `json:"context,omitempty"`
}

func (c CallTarget) Validate() error {
	return required("phone", strings.TrimSpace(c.Phone))
}

// StartCallsRequest is the body of POST /calls/start.
type StartCallsRequest struct {
	Targets       []CallTarget `json:"targets"`
	CampaignOffer string       `json:"campaign_offer,omitempty"`
	Purpose       string       `json:"purpose"`
}

func (s StartCallsRequest) Validate() error {
	if len(s.Targets) == 0 {
		return &ValidationError{Field: "targets", Reason: "at least one target is required"}
	}
	if err := nest("targets", ValidateAll(s.Targets)); err != nil {
		return err
	}
	return required("purpose", strings.TrimSpace(s.Purpose))
}

// StartCallsResponse lists the ids of the created call sessions.
type StartCallsResponse struct {
	OK    bool    `json:"ok"`
	Calls []int64 `json:"calls"`
}

func (s StartCallsResponse) Validate() error {
	for i, id := range s.Calls {
		if err := positiveID(fmt.Sprintf("calls[%d]", i), id); err != nil {
			return err
		}
	}
	return nil
}

// Credentials is the body of POST /auth/login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c Credentials) Validate() error {
	if err := required("email", strings.TrimSpace(c.Email)); err != nil {
		return err
	}
	return required("password", c.Password)
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
}

func (l LoginResponse) Validate() error {
	return required("access_token", l.AccessToken)
}

// PauseRequest is the body of POST /campaigns/{id}/recipients/{rid}/pause.
type PauseRequest struct {
	Paused bool `json:"paused"`
}
