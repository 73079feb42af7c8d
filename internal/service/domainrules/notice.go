package domainrules

import (
	"fmt"
	"strings"

	"github.com/osteele/liquid"
)

// DefaultNoticeTemplate is the body sent to senders whose domain is rejected.
const DefaultNoticeTemplate = `Hello,

Your message to {{ organization | default: "our helpdesk" }} could not be accepted.
Mail from the domain {{ domain }} is not permitted by this helpdesk's sender policy.

If you believe this is a mistake, please contact the organization through another channel.

-- {{ organization | default: "Helpdesk" }} Support`

// NoticeRenderer renders the rejection notice for blocked senders.
type NoticeRenderer struct {
	tpl *liquid.Template
}

// NewNoticeRenderer compiles the template. An empty template selects
// DefaultNoticeTemplate.
func NewNoticeRenderer(template string) (*NoticeRenderer, error) {
	if strings.TrimSpace(template) == "" {
		template = DefaultNoticeTemplate
	}
	engine := liquid.NewEngine()
	tpl, err := engine.ParseString(template)
	if err != nil {
		return nil, fmt.Errorf("parse rejection notice: %w", err)
	}
	return &NoticeRenderer{tpl: tpl}, nil
}

// Render produces the notice for a sender address.
func (n *NoticeRenderer) Render(sender, organization string) (string, error) {
	out, err := n.tpl.RenderString(map[string]any{
		"sender":       strings.TrimSpace(sender),
		"domain":       SenderDomain(sender),
		"organization": organization,
	})
	if err != nil {
		return "", fmt.Errorf("render rejection notice: %w", err)
	}
	return out, nil
}
