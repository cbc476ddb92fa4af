package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/outreach-console/internal/client/views"
	"github.com/dmitrijs2005/outreach-console/internal/common"
)

// listView is what the REPL needs from every screen's controller.
type listView interface {
	Load(ctx context.Context) error
	SetSearchTerm(term string)
	SetStatusFilter(status string) error
	Deselect()
	Counts() map[string]int
}

func (a *App) viewOf(screen string) listView {
	switch screen {
	case screenLeads:
		return a.leads
	case screenCampaigns:
		return a.campaigns
	default:
		return a.calls
	}
}

func statusesOf(screen string) []string {
	switch screen {
	case screenLeads:
		return views.LeadsResource.Statuses
	case screenCampaigns:
		return views.CampaignsResource.Statuses
	default:
		return views.CallsResource.Statuses
	}
}

// renderScreen prints the list of a screen, or its open detail.
func (a *App) renderScreen(screen string) {
	switch screen {
	case screenLeads:
		if l, ok := a.leads.Selected(); ok {
			printlnFn(renderLead(l))
			return
		}
		printlnFn(renderList("Leads", a.leads.State(), a.leads.Visible(), leadHeaders, leadRow))
	case screenCampaigns:
		if c, ok := a.campaigns.Selected(); ok {
			printlnFn(renderCampaign(c, a.campaigns.Detail.State(), a.campaigns.RecipientCounts()))
			return
		}
		printlnFn(renderList("Campaigns", a.campaigns.State(), a.campaigns.Visible(), campaignHeaders, campaignRow))
	case screenCalls:
		if c, ok := a.calls.Selected(); ok {
			printlnFn(renderCall(c, a.calls.Detail.State()))
			return
		}
		printlnFn(renderList("Calls", a.calls.State(), a.calls.Visible(), callHeaders, callRow))
	}
}

// open navigates to screen, reloads it and renders it. Load failures are
// part of the rendered state, so they are not returned.
func (a *App) open(ctx context.Context, screen string) error {
	return a.navigate(ctx, screen, func(ctx context.Context) error {
		a.setAutoRefresh(nil)
		v := a.viewOf(screen)
		v.Deselect()
		_ = v.Load(ctx)
		if screen == screenLeads {
			a.startLeadsRefresh(ctx)
		}
		a.renderScreen(screen)
		return nil
	})
}

func (a *App) Leads(ctx context.Context) error     { return a.open(ctx, screenLeads) }
func (a *App) Campaigns(ctx context.Context) error { return a.open(ctx, screenCampaigns) }
func (a *App) Calls(ctx context.Context) error     { return a.open(ctx, screenCalls) }

// Refresh reloads the current screen, keeping search, filter and selection.
func (a *App) Refresh(ctx context.Context) error {
	return a.guard(ctx, func(ctx context.Context, screen string) error {
		_ = a.viewOf(screen).Load(ctx)
		a.renderScreen(screen)
		return nil
	})
}

func (a *App) Search(ctx context.Context, args []string) error {
	return a.guard(ctx, func(ctx context.Context, screen string) error {
		a.viewOf(screen).SetSearchTerm(strings.Join(args, " "))
		a.renderScreen(screen)
		return nil
	})
}

func (a *App) Filter(ctx context.Context, args []string) error {
	return a.guard(ctx, func(ctx context.Context, screen string) error {
		status := common.StatusAll
		if len(args) > 0 {
			status = args[0]
		}
		if err := a.viewOf(screen).SetStatusFilter(status); err != nil {
			printlnFn(err.Error())
			return err
		}
		a.renderScreen(screen)
		return nil
	})
}

// Show opens the detail of one record of the current screen.
func (a *App) Show(ctx context.Context, args []string) error {
	return a.guard(ctx, func(ctx context.Context, screen string) error {
		if len(args) == 0 {
			printlnFn("Usage: show <id>")
			return nil
		}
		id, err := parseID(args[0])
		if err != nil {
			printlnFn(err.Error())
			return err
		}
		switch screen {
		case screenLeads:
			_, err = a.leads.Select(id)
		case screenCampaigns:
			_, err = a.campaigns.Select(ctx, id)
		case screenCalls:
			_, err = a.calls.Select(ctx, id)
		}
		if err != nil {
			printlnFn(err.Error())
			return err
		}
		a.renderScreen(screen)
		return nil
	})
}

// CloseDetail closes the open detail and shows the list again.
func (a *App) CloseDetail(ctx context.Context) error {
	return a.guard(ctx, func(ctx context.Context, screen string) error {
		a.viewOf(screen).Deselect()
		a.renderScreen(screen)
		return nil
	})
}

// Timeline shows the event timeline of a recipient of the open campaign.
func (a *App) Timeline(ctx context.Context, args []string) error {
	return a.guard(ctx, func(ctx context.Context, screen string) error {
		if screen != screenCampaigns || len(args) == 0 {
			printlnFn("Usage (campaigns screen, campaign open): timeline <recipient id>")
			return nil
		}
		id, err := parseID(args[0])
		if err != nil {
			printlnFn(err.Error())
			return err
		}
		if err := a.campaigns.ShowTimeline(ctx, id); err != nil {
			if errors.Is(err, common.ErrNothingSelected) {
				printlnFn("Open a campaign first: show <campaign id>")
			} else {
				printlnFn(err.Error())
			}
			return err
		}
		printlnFn(renderTimeline(id, a.campaigns.Timeline.State()))
		return nil
	})
}

func (a *App) Stats(ctx context.Context) error {
	return a.guard(ctx, func(ctx context.Context, screen string) error {
		printlnFn(renderCounts("By status", statusesOf(screen), a.viewOf(screen).Counts()))
		return nil
	})
}

// AutoRefresh turns the periodic reload of the leads screen on or off.
func (a *App) AutoRefresh(ctx context.Context, args []string) error {
	if len(args) == 0 || (args[0] != "on" && args[0] != "off") {
		printlnFn("Usage: autorefresh on|off")
		return nil
	}
	a.mu.Lock()
	a.refreshOff = args[0] == "off"
	a.mu.Unlock()

	if args[0] == "off" {
		a.setAutoRefresh(nil)
		printlnFn("Auto-refresh off")
		return nil
	}
	if a.config.LeadsRefreshInterval <= 0 {
		printlnFn("Auto-refresh is disabled by configuration")
		return nil
	}
	if a.currentScreen() == screenLeads && a.isLoggedIn() {
		a.startLeadsRefresh(ctx)
	}
	printlnFn("Auto-refresh on, every", a.config.LeadsRefreshInterval.String())
	return nil
}

func (a *App) startLeadsRefresh(ctx context.Context) {
	a.mu.Lock()
	off := a.refreshOff
	a.mu.Unlock()
	if off || a.config.LeadsRefreshInterval <= 0 {
		return
	}
	a.setAutoRefresh(a.leads.AutoRefresh(ctx, a.config.LeadsRefreshInterval))
}

// setAutoRefresh replaces the running refresher, stopping the previous one.
func (a *App) setAutoRefresh(stop func()) {
	a.mu.Lock()
	prev := a.stopRefresh
	a.stopRefresh = stop
	a.mu.Unlock()
	if prev != nil {
		prev()
	}
}

// compile-time checks that every screen controller fits the REPL.
var (
	_ listView = (*views.LeadsView)(nil)
	_ listView = (*views.CampaignsView)(nil)
	_ listView = (*views.CallsView)(nil)
)
