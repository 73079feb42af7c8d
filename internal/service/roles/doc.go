// Package roles shapes role permission sets and forwards role changes to
// the helpdesk admin API, which owns role storage.
package roles
