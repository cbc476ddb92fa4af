package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/outreach-console/internal/client/gate"
	"github.com/dmitrijs2005/outreach-console/internal/client/models"
)

// protect runs fn behind a gate without leaving the current route.
func (a *App) protect(ctx context.Context, fn func(ctx context.Context) error) error {
	return gate.New(a.auth, a.toLogin, fn).Mount(ctx)
}

// report prints a command failure; validation problems are shown as such.
func report(what string, err error) error {
	var ve *models.ValidationError
	if errors.As(err, &ve) {
		printlnFn("Invalid input:", ve.Error())
	} else {
		printlnFn(what+" failed:", err.Error())
	}
	return err
}

// reloadIfOpen refreshes screen when it is the current one.
func (a *App) reloadIfOpen(ctx context.Context, screen string) {
	if a.currentScreen() == screen {
		_ = a.viewOf(screen).Load(ctx)
		a.renderScreen(screen)
	}
}

// NewLead prompts for a lead and creates it on the primary backend.
func (a *App) NewLead(ctx context.Context) error {
	return a.protect(ctx, func(ctx context.Context) error {
		in := &models.NewLead{}
		prompts := []struct {
			label    string
			dst      *string
			fallback string
		}{
			{"Name", &in.Name, ""},
			{"Email", &in.Email, ""},
			{"Company", &in.Company, ""},
			{"Role", &in.Role, ""},
			{"LinkedIn URL", &in.LinkedInURL, ""},
			{"Source", &in.Source, ""},
			{"Company size", &in.CompanySize, ""},
			{"Industry", &in.Industry, ""},
			{"Location", &in.Location, ""},
			{"Stage (" + strings.Join(models.LeadStages, ", ") + ")", &in.Stage, "new"},
		}
		for _, p := range prompts {
			v, err := getTextOr(a.reader, p.label, p.fallback, os.Stdout)
			if err != nil {
				return err
			}
			*p.dst = v
		}

		lead, err := a.api.CreateLead(ctx, in)
		if err != nil {
			return report("Create lead", err)
		}
		printlnFn(fmt.Sprintf("Lead #%d created", lead.ID))
		a.reloadIfOpen(ctx, screenLeads)
		return nil
	})
}

// DeleteLead removes a lead after confirmation.
func (a *App) DeleteLead(ctx context.Context, args []string) error {
	return a.protect(ctx, func(ctx context.Context) error {
		if len(args) == 0 {
			printlnFn("Usage: deletelead <id>")
			return nil
		}
		id, err := parseID(args[0])
		if err != nil {
			printlnFn(err.Error())
			return err
		}
		answer, err := getSimpleText(a.reader, fmt.Sprintf("Delete lead #%d? (y/N)", id), os.Stdout)
		if err != nil {
			return err
		}
		if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
			printlnFn("Cancelled")
			return nil
		}
		if err := a.api.DeleteLead(ctx, id); err != nil {
			return report("Delete lead", err)
		}
		printlnFn(fmt.Sprintf("Lead #%d deleted", id))
		if sel, ok := a.leads.Selected(); ok && sel.ID == id {
			a.leads.Deselect()
		}
		a.reloadIfOpen(ctx, screenLeads)
		return nil
	})
}

// NewCampaign prompts for a campaign and its email sequence. An empty
// subject ends the sequence.
func (a *App) NewCampaign(ctx context.Context) error {
	return a.protect(ctx, func(ctx context.Context) error {
		in := &models.NewCampaign{}
		var err error
		if in.Name, err = getSimpleText(a.reader, "Campaign name", os.Stdout); err != nil {
			return err
		}
		if in.Offer, err = getSimpleText(a.reader, "Offer", os.Stdout); err != nil {
			return err
		}
		if in.Status, err = getTextOr(a.reader, "Status ("+strings.Join(models.CampaignStatuses, ", ")+")", "draft", os.Stdout); err != nil {
			return err
		}

		for step := 1; ; step++ {
			subject, err := getSimpleText(a.reader, fmt.Sprintf("Email %d subject (empty to finish)", step), os.Stdout)
			if err != nil {
				return err
			}
			if subject == "" {
				break
			}
			body, err := getMultiline(a.reader, fmt.Sprintf("Email %d body", step), os.Stdout)
			if err != nil {
				return err
			}
			defDelay := "0"
			if step > 1 {
				defDelay = "24"
			}
			delayText, err := getTextOr(a.reader, "Delay before send (hours)", defDelay, os.Stdout)
			if err != nil {
				return err
			}
			delay, err := strconv.Atoi(delayText)
			if err != nil {
				printlnFn("Invalid input: delay must be a whole number of hours")
				return err
			}
			in.Emails = append(in.Emails, models.EmailTemplate{
				SubjectTemplate: subject,
				BodyTemplate:    body,
				SendDelayHours:  delay,
			})
		}

		c, err := a.api.CreateCampaign(ctx, in)
		if err != nil {
			return report("Create campaign", err)
		}
		printlnFn(fmt.Sprintf("Campaign #%d created with %d emails", c.ID, len(in.Emails)))
		a.reloadIfOpen(ctx, screenCampaigns)
		return nil
	})
}

// Enroll adds leads to a campaign: enroll <campaign id> <lead id>... [--now]
func (a *App) Enroll(ctx context.Context, args []string) error {
	return a.protect(ctx, func(ctx context.Context) error {
		var (
			ids     []int64
			sendNow bool
		)
		for _, arg := range args {
			if arg == "--now" || arg == "-now" {
				sendNow = true
				continue
			}
			for _, part := range strings.Split(arg, ",") {
				if part == "" {
					continue
				}
				id, err := parseID(part)
				if err != nil {
					printlnFn(err.Error())
					return err
				}
				ids = append(ids, id)
			}
		}
		if len(ids) < 2 {
			printlnFn("Usage: enroll <campaign id> <lead id>... [--now]")
			return nil
		}

		campaignID, leadIDs := ids[0], ids[1:]
		if err := a.api.Enroll(ctx, campaignID, models.EnrollRequest{LeadIDs: leadIDs, SendNow: sendNow}); err != nil {
			return report("Enroll", err)
		}
		printlnFn(fmt.Sprintf("Enrolled %d lead(s) in campaign #%d", len(leadIDs), campaignID))
		if sel, ok := a.campaigns.Selected(); ok && sel.ID == campaignID && a.currentScreen() == screenCampaigns {
			_, _ = a.campaigns.Select(ctx, campaignID)
			a.renderScreen(screenCampaigns)
		}
		return nil
	})
}

// SetPaused pauses or resumes a recipient of the open campaign.
func (a *App) SetPaused(ctx context.Context, args []string, paused bool) error {
	return a.guard(ctx, func(ctx context.Context, screen string) error {
		camp, ok := a.campaigns.Selected()
		if screen != screenCampaigns || !ok || len(args) == 0 {
			printlnFn("Usage (campaigns screen, campaign open): pause|resume <recipient id>")
			return nil
		}
		id, err := parseID(args[0])
		if err != nil {
			printlnFn(err.Error())
			return err
		}
		if err := a.api.PauseRecipient(ctx, camp.ID, id, paused); err != nil {
			return report("Update recipient", err)
		}
		verb := "resumed"
		if paused {
			verb = "paused"
		}
		printlnFn(fmt.Sprintf("Recipient #%d %s", id, verb))
		_, _ = a.campaigns.Select(ctx, camp.ID)
		a.renderScreen(screen)
		return nil
	})
}

// StartCall prompts for one target and asks the call service to dial it.
func (a *App) StartCall(ctx context.Context) error {
	return a.protect(ctx, func(ctx context.Context) error {
		var target models.CallTarget
		var err error
		if target.Phone, err = getSimpleText(a.reader, "Phone", os.Stdout); err != nil {
			return err
		}
		if target.Email, err = getSimpleText(a.reader, "Email (optional)", os.Stdout); err != nil {
			return err
		}
		leadText, err := getSimpleText(a.reader, "Lead id (optional)", os.Stdout)
		if err != nil {
			return err
		}
		if leadText != "" {
			if target.LeadID, err = parseID(leadText); err != nil {
				printlnFn(err.Error())
				return err
			}
		}
		req := models.StartCallsRequest{Targets: []models.CallTarget{target}}
		if req.Purpose, err = getSimpleText(a.reader, "Purpose", os.Stdout); err != nil {
			return err
		}
		if req.CampaignOffer, err = getSimpleText(a.reader, "Campaign offer (optional)", os.Stdout); err != nil {
			return err
		}

		resp, err := a.api.StartCalls(ctx, req)
		if err != nil {
			return report("Start call", err)
		}
		ids := make([]string, 0, len(resp.Calls))
		for _, id := range resp.Calls {
			ids = append(ids, "#"+strconv.FormatInt(id, 10))
		}
		printlnFn("Started call(s):", strings.Join(ids, ", "))
		a.reloadIfOpen(ctx, screenCalls)
		return nil
	})
}
