// Package domainrules maintains the tenant's sender-domain whitelist and
// blacklist and evaluates inbound senders against them.
//
// The list operations are pure functions over slices. Service adds the
// console workflow on top: a per-session draft that is edited one domain
// at a time and persisted wholesale through the helpdesk settings API.
// Blacklist entries always win over whitelist entries, and an empty
// whitelist allows every sender that is not blacklisted.
package domainrules
