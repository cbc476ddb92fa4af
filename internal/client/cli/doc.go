// Package cli provides the interactive operator console.
//
// It wires configuration, the local state database, the API client and the
// view controllers into a REPL. Protected screens (leads, campaigns, calls)
// live under the configured admin path and are mounted through an auth gate;
// without a stored credential every navigation lands on /login.
//
// Key features:
//   - Login / Logout / Whoami
//   - Browse leads, campaigns and calls with search and status filters
//   - Drill into call events, campaign recipients and recipient timelines
//   - Create leads and campaigns, enroll leads, pause recipients, start calls
//   - Periodic refresh of the leads screen
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
