package views

import (
	"context"
	"fmt"
	"slices"

	"github.com/dmitrijs2005/outreach-console/internal/client/api"
	"github.com/dmitrijs2005/outreach-console/internal/client/models"
	"github.com/dmitrijs2005/outreach-console/internal/common"
	"github.com/dmitrijs2005/outreach-console/internal/logging"
)

var LeadsResource = Resource[models.Lead]{
	Kind:       "leads",
	ListPath:   api.LeadsPath,
	Target:     api.Primary,
	Statuses:   models.LeadStages,
	Status:     func(l models.Lead) string { return l.Stage },
	Searchable: func(l models.Lead) []string { return []string{l.Name, l.Email, l.Company} },
	ID:         func(l models.Lead) int64 { return l.ID },
}

var CampaignsResource = Resource[models.Campaign]{
	Kind:       "campaigns",
	ListPath:   api.CampaignsPath,
	Target:     api.Primary,
	Statuses:   models.CampaignStatuses,
	Status:     func(c models.Campaign) string { return c.Status },
	Searchable: func(c models.Campaign) []string { return []string{c.Name, c.Offer} },
	ID:         func(c models.Campaign) int64 { return c.ID },
}

var CallsResource = Resource[models.CallSession]{
	Kind:       "calls",
	ListPath:   api.CallsPath,
	Target:     api.Secondary,
	Statuses:   models.CallStatuses,
	Status:     func(c models.CallSession) string { return c.Status },
	Searchable: func(c models.CallSession) []string { return []string{c.Phone, c.Email, c.Purpose} },
	ID:         func(c models.CallSession) int64 { return c.ID },
}

// RecipientStates are the enrollment states tallied on a campaign detail.
var RecipientStates = []string{"enrolled", "paused", "completed", "failed"}

type LeadsView = Controller[models.Lead]

func NewLeads(f api.Fetcher, log logging.Logger) *LeadsView {
	return NewController(LeadsResource, f, log)
}

type CallsView = Drilled[models.CallSession, models.CallEvent]

// NewCalls builds the calls view; selecting a call loads its events.
func NewCalls(f api.Fetcher, log logging.Logger) *CallsView {
	return NewDrilled[models.CallSession, models.CallEvent](CallsResource, api.CallEventsPath, f, log)
}

// CampaignsView lists campaigns; selecting one loads its recipients, and a
// recipient of the open campaign can be drilled into for its timeline.
type CampaignsView struct {
	*Drilled[models.Campaign, models.Recipient]
	Timeline *Driller[models.RecipientEvent]
}

func NewCampaigns(f api.Fetcher, log logging.Logger) *CampaignsView {
	return &CampaignsView{
		Drilled:  NewDrilled[models.Campaign, models.Recipient](CampaignsResource, api.RecipientsPath, f, log),
		Timeline: NewDriller[models.RecipientEvent](f, log.With("kind", "campaigns", "detail", "timeline")),
	}
}

func (v *CampaignsView) Select(ctx context.Context, id int64) (models.Campaign, error) {
	v.Timeline.Reset()
	return v.Drilled.Select(ctx, id)
}

func (v *CampaignsView) Deselect() {
	v.Drilled.Deselect()
	v.Timeline.Reset()
}

// ShowTimeline loads the event timeline of one recipient of the open campaign.
func (v *CampaignsView) ShowTimeline(ctx context.Context, recipientID int64) error {
	camp, ok := v.Selected()
	if !ok {
		return common.ErrNothingSelected
	}
	recs := v.Detail.State().Records
	if !slices.ContainsFunc(recs, func(r models.Recipient) bool { return r.ID == recipientID }) {
		return fmt.Errorf("%w: recipient #%d in campaign #%d", common.ErrRecordNotFound, recipientID, camp.ID)
	}
	key := fmt.Sprintf("%d/%d", camp.ID, recipientID)
	v.Timeline.Load(ctx, key, api.RecipientEventsPath(camp.ID, recipientID), api.Primary)
	return nil
}

// RecipientCounts tallies the open campaign's recipients by state.
func (v *CampaignsView) RecipientCounts() map[string]int {
	counts := make(map[string]int, len(RecipientStates))
	for _, s := range RecipientStates {
		counts[s] = 0
	}
	for _, r := range v.Detail.State().Records {
		counts[r.State()]++
	}
	return counts
}
