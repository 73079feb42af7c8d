package render

import (
	"html"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kloudinfotech/helpdesk-console/internal/domain"
	"github.com/kloudinfotech/helpdesk-console/internal/service/access"
)

const purchaseURL = "https://buy.example.com/pro?ref=console"

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New(purchaseURL)
	require.NoError(t, err)
	return r
}

func TestLanding(t *testing.T) {
	out, err := newRenderer(t).Landing()
	require.NoError(t, err)
	page := string(out)

	assert.Contains(t, page, "<title>Open Source Ticketing Tool · MernDesk</title>")
	assert.Contains(t, page, `<h2 id="features">`)
	assert.Contains(t, page, "<table>")
	assert.Contains(t, page, `id="pricing"`)
	assert.Contains(t, page, "&#8377;9999")
	assert.Contains(t, page, `href="https://buy.example.com/pro?ref=console"`)
	assert.Contains(t, page, `target="_blank"`)
}

func TestUpgrade_Basic(t *testing.T) {
	out, err := newRenderer(t).Upgrade(UpgradePage{Plan: domain.PlanBasic, CSRFToken: "tok<1>"})
	require.NoError(t, err)
	page := string(out)

	for _, f := range access.Comparison() {
		assert.Contains(t, page, html.EscapeString(f.Name))
	}
	assert.Contains(t, page, `value="tok&lt;1&gt;"`)
	assert.Contains(t, page, "Already paid?")
	assert.NotContains(t, page, "You're on Pro")
}

func TestUpgrade_Pro(t *testing.T) {
	out, err := newRenderer(t).Upgrade(UpgradePage{Plan: domain.PlanPro})
	require.NoError(t, err)
	page := string(out)

	assert.Contains(t, page, "You're on Pro")
	assert.NotContains(t, page, "Already paid?")
}

func TestUpgradeRequired(t *testing.T) {
	prompt := access.NewNavigator(purchaseURL).Prompt(domain.FeatureSSOIntegration)
	out, err := newRenderer(t).UpgradeRequired(prompt)
	require.NoError(t, err)
	page := string(out)

	title := domain.FeatureSSOIntegration.Label() + " Requires Pro"
	assert.Equal(t, 2, strings.Count(page, title), "title and heading")
	assert.Contains(t, page, `target="_blank"`)
}

func TestMarkdown(t *testing.T) {
	out, err := Markdown([]byte("## Hi {#x}\n\n| a |\n|---|\n| b |\n"))
	require.NoError(t, err)
	assert.Contains(t, out, `<h2 id="x">Hi</h2>`)
	assert.Contains(t, out, "<td>b</td>")
}
