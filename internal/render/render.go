// Package render produces the server-rendered HTML pages: the public
// landing page, the upgrade page and the upgrade-required page.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"time"

	"github.com/osteele/liquid"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/kloudinfotech/helpdesk-console/internal/domain"
	"github.com/kloudinfotech/helpdesk-console/internal/service/access"
)

//go:embed templates/*
var templateFS embed.FS

// Product is the name shown in page titles.
const Product = "MernDesk"

// Renderer holds the parsed page templates.
type Renderer struct {
	purchaseURL string
	now         func() time.Time

	layout          *liquid.Template
	pricing         *liquid.Template
	upgrade         *liquid.Template
	upgradeRequired *liquid.Template
	landingBody     string
}

// New parses the embedded templates and converts the landing page.
func New(purchaseURL string) (*Renderer, error) {
	engine := liquid.NewEngine()
	r := &Renderer{purchaseURL: purchaseURL, now: time.Now}

	for name, dst := range map[string]**liquid.Template{
		"layout.liquid":           &r.layout,
		"pricing.liquid":          &r.pricing,
		"upgrade.liquid":          &r.upgrade,
		"upgrade_required.liquid": &r.upgradeRequired,
	} {
		src, err := templateFS.ReadFile("templates/" + name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		tpl, perr := engine.ParseTemplate(src)
		if perr != nil {
			return nil, fmt.Errorf("parse %s: %w", name, perr)
		}
		*dst = tpl
	}

	md, err := templateFS.ReadFile("templates/landing.md")
	if err != nil {
		return nil, fmt.Errorf("read landing.md: %w", err)
	}
	body, err := Markdown(md)
	if err != nil {
		return nil, err
	}
	r.landingBody = body
	return r, nil
}

// Markdown converts GitHub-flavored markdown to HTML.
func Markdown(src []byte) (string, error) {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID(), parser.WithAttribute()),
	)
	var buf bytes.Buffer
	if err := md.Convert(src, &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}

func (r *Renderer) page(title, class, content string) ([]byte, error) {
	out, err := r.layout.Render(liquid.Bindings{
		"title":      title,
		"product":    Product,
		"body_class": class,
		"year":       r.now().Year(),
		"content":    content,
	})
	if err != nil {
		return nil, fmt.Errorf("render layout: %w", err)
	}
	return out, nil
}

// Landing renders the public landing page with pricing.
func (r *Renderer) Landing() ([]byte, error) {
	pricing, err := r.pricing.RenderString(liquid.Bindings{
		"price":        access.ProPriceINR,
		"purchase_url": r.purchaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("render pricing: %w", err)
	}
	return r.page("Open Source Ticketing Tool", "landing", r.landingBody+pricing)
}

// UpgradePage is the data behind the upgrade page.
type UpgradePage struct {
	Plan      domain.Plan
	CSRFToken string
	Notice    string
}

// Upgrade renders the plan comparison, or a thank-you for pro users.
func (r *Renderer) Upgrade(p UpgradePage) ([]byte, error) {
	rows := make([]map[string]any, 0)
	for _, f := range access.Comparison() {
		rows = append(rows, map[string]any{"name": f.Name, "basic": f.Basic, "pro": f.Pro})
	}
	content, err := r.upgrade.RenderString(liquid.Bindings{
		"is_pro":       p.Plan == domain.PlanPro,
		"price":        access.ProPriceINR,
		"features":     rows,
		"purchase_url": r.purchaseURL,
		"csrf_token":   p.CSRFToken,
		"notice":       p.Notice,
	})
	if err != nil {
		return nil, fmt.Errorf("render upgrade: %w", err)
	}
	return r.page("Upgrade to Pro", "upgrade", content)
}

// UpgradeRequired renders the page shown in place of a gated screen.
func (r *Renderer) UpgradeRequired(prompt access.UpgradePrompt) ([]byte, error) {
	content, err := r.upgradeRequired.RenderString(liquid.Bindings{
		"feature":      prompt.Feature.Label(),
		"message":      prompt.Message,
		"purchase_url": prompt.PurchaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("render upgrade required: %w", err)
	}
	return r.page(prompt.Feature.Label()+" Requires Pro", "upgrade-required", content)
}
