package domain

// NavSection groups navigation entries in the sidebar.
type NavSection string

const (
	SectionMain  NavSection = "main"
	SectionAdmin NavSection = "admin"
)

// NavItem is a static sidebar entry. Feature is empty for ungated items.
type NavItem struct {
	Path    string     `json:"path"`
	Label   string     `json:"label"`
	Icon    string     `json:"icon"`
	Feature FeatureKey `json:"feature,omitempty"`
	Section NavSection `json:"section"`
	Locked  bool       `json:"locked"`
}
