// Package automation shapes and manages scheduled report emails.
//
// An automation is a single draft submitted wholesale on create or update.
// Prepare normalizes the draft for its type (only weekly reports keep a
// day of week, only monthly reports a day of month) and validates it
// before anything is sent to the helpdesk API, which remains the
// authoritative validator and executor.
package automation
