package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/outreach-console/internal/client/models"
)

// Paths of the list endpoints, relative to their target's base URL.
const (
	LeadsPath     = "/leads"
	CampaignsPath = "/campaigns/"
	CallsPath     = "/calls"
)

func LeadPath(id int64) string {
	return fmt.Sprintf("/leads/%d", id)
}

func RecipientsPath(campaignID int64) string {
	return fmt.Sprintf("/campaigns/%d/recipients", campaignID)
}

func RecipientEventsPath(campaignID, recipientID int64) string {
	return fmt.Sprintf("/campaigns/%d/recipients/%d/events", campaignID, recipientID)
}

func CallEventsPath(callID int64) string {
	return fmt.Sprintf("/calls/%d/events", callID)
}

// Login exchanges credentials for an access token on the primary service.
func (c *Client) Login(ctx context.Context, creds models.Credentials) (*models.LoginResponse, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	var out models.LoginResponse
	err := c.Fetch(ctx, "/auth/login", Options{Method: http.MethodPost, Body: creds}, Primary, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListLeads(ctx context.Context) ([]models.Lead, error) {
	return List[models.Lead](ctx, c, LeadsPath, Primary)
}

func (c *Client) CreateLead(ctx context.Context, in *models.NewLead) (*models.Lead, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var out models.Lead
	if err := c.Fetch(ctx, "/leads/", Options{Method: http.MethodPost, Body: in}, Primary, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteLead(ctx context.Context, id int64) error {
	_, err := c.Request(ctx, LeadPath(id), Options{Method: http.MethodDelete}, Primary)
	return err
}

func (c *Client) ListCampaigns(ctx context.Context) ([]models.Campaign, error) {
	return List[models.Campaign](ctx, c, CampaignsPath, Primary)
}

func (c *Client) CreateCampaign(ctx context.Context, in *models.NewCampaign) (*models.Campaign, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var out models.Campaign
	if err := c.Fetch(ctx, CampaignsPath, Options{Method: http.MethodPost, Body: in}, Primary, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListRecipients(ctx context.Context, campaignID int64) ([]models.Recipient, error) {
	return List[models.Recipient](ctx, c, RecipientsPath(campaignID), Primary)
}

func (c *Client) ListRecipientEvents(ctx context.Context, campaignID, recipientID int64) ([]models.RecipientEvent, error) {
	return List[models.RecipientEvent](ctx, c, RecipientEventsPath(campaignID, recipientID), Primary)
}

// Enroll adds leads to a campaign's sequence; SendNow sends the first step immediately.
func (c *Client) Enroll(ctx context.Context, campaignID int64, in models.EnrollRequest) error {
	if err := in.Validate(); err != nil {
		return err
	}
	path := fmt.Sprintf("/campaigns/%d/enroll", campaignID)
	_, err := c.Request(ctx, path, Options{Method: http.MethodPost, Body: in}, Primary)
	return err
}

// PauseRecipient pauses (or, with paused=false, resumes) one recipient.
func (c *Client) PauseRecipient(ctx context.Context, campaignID, recipientID int64, paused bool) error {
	path := fmt.Sprintf("/campaigns/%d/recipients/%d/pause", campaignID, recipientID)
	_, err := c.Request(ctx, path, Options{Method: http.MethodPost, Body: models.PauseRequest{Paused: paused}}, Primary)
	return err
}

func (c *Client) ListCalls(ctx context.Context) ([]models.CallSession, error) {
	return List[models.CallSession](ctx, c, CallsPath, Secondary)
}

func (c *Client) ListCallEvents(ctx context.Context, callID int64) ([]models.CallEvent, error) {
	return List[models.CallEvent](ctx, c, CallEventsPath(callID), Secondary)
}

// StartCalls asks the call service to dial every target.
func (c *Client) StartCalls(ctx context.Context, in models.StartCallsRequest) (*models.StartCallsResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var out models.StartCallsResponse
	if err := c.Fetch(ctx, "/calls/start", Options{Method: http.MethodPost, Body: in}, Secondary, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
