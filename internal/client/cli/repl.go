package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error

	Leads(ctx context.Context) error
	Campaigns(ctx context.Context) error
	Calls(ctx context.Context) error
	Refresh(ctx context.Context) error
	Search(ctx context.Context, args []string) error
	Filter(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	CloseDetail(ctx context.Context) error
	Timeline(ctx context.Context, args []string) error
	Stats(ctx context.Context) error
	AutoRefresh(ctx context.Context, args []string) error

	NewLead(ctx context.Context) error
	DeleteLead(ctx context.Context, args []string) error
	NewCampaign(ctx context.Context) error
	Enroll(ctx context.Context, args []string) error
	SetPaused(ctx context.Context, args []string, paused bool) error
	StartCall(ctx context.Context) error
}

const (
	helpAnonymous = "Available commands: login, help, exit"
	helpOperator  = `Available commands:
  leads | campaigns | calls         open a screen
  refresh                           reload the current screen
  search <term>                     filter by text (empty clears)
  filter <status|all>               filter by status
  show <id> | close                 open or close a record
  timeline <recipient id>           recipient events of the open campaign
  pause | resume <recipient id>     pause or resume a recipient
  stats                             counts by status
  newlead | deletelead <id>         manage leads
  newcampaign                       create a campaign
  enroll <campaign id> <lead ids...> [--now]
  startcall                         dial a phone number
  autorefresh on|off                periodic reload of leads
  whoami | logout | exit`
)

// runREPL reads commands from scanner until EOF, "exit" or "quit".
//
// The first token of a line is the command, the rest are its arguments.
// Errors returned by handlers are ignored here; handlers report their own
// failures to the user.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("oc> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		switch cmd {
		case "help", "?":
			if a.isLoggedIn() {
				printlnFn(helpOperator)
			} else {
				printlnFn(helpAnonymous)
			}

		case "login":
			_ = a.Login(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "whoami":
			_ = a.Whoami(ctx)

		case "leads":
			_ = a.Leads(ctx)
		case "campaigns":
			_ = a.Campaigns(ctx)
		case "calls":
			_ = a.Calls(ctx)
		case "r", "refresh":
			_ = a.Refresh(ctx)
		case "search":
			_ = a.Search(ctx, args)
		case "filter":
			_ = a.Filter(ctx, args)
		case "show":
			_ = a.Show(ctx, args)
		case "close":
			_ = a.CloseDetail(ctx)
		case "timeline":
			_ = a.Timeline(ctx, args)
		case "stats":
			_ = a.Stats(ctx)
		case "autorefresh":
			_ = a.AutoRefresh(ctx, args)

		case "newlead":
			_ = a.NewLead(ctx)
		case "deletelead":
			_ = a.DeleteLead(ctx, args)
		case "newcampaign":
			_ = a.NewCampaign(ctx)
		case "enroll":
			_ = a.Enroll(ctx, args)
		case "pause":
			_ = a.SetPaused(ctx, args, true)
		case "resume":
			_ = a.SetPaused(ctx, args, false)
		case "startcall":
			_ = a.StartCall(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
