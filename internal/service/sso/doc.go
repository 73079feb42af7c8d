// Package sso manages the tenant's single sign-on providers (Azure AD and
// Google Workspace) and checks their client credentials against the
// provider's token endpoint before they are relied on at login.
package sso
