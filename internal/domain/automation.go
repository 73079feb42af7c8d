package domain

import "time"

// AutomationType selects which scheduled email an automation sends.
type AutomationType string

const (
	AutomationDailyOpenTickets AutomationType = "daily-open-tickets"
	AutomationDailyReport      AutomationType = "daily-report"
	AutomationWeeklyReport     AutomationType = "weekly-report"
	AutomationMonthlyReport    AutomationType = "monthly-report"
)

// AutomationTypes lists every type in display order.
var AutomationTypes = []AutomationType{
	AutomationDailyOpenTickets,
	AutomationDailyReport,
	AutomationWeeklyReport,
	AutomationMonthlyReport,
}

var automationLabels = map[AutomationType]string{
	AutomationDailyOpenTickets: "Daily Open Tickets",
	AutomationDailyReport:      "Daily Report",
	AutomationWeeklyReport:     "Weekly Report",
	AutomationMonthlyReport:    "Monthly Report",
}

// Valid reports whether t is a known automation type.
func (t AutomationType) Valid() bool {
	_, ok := automationLabels[t]
	return ok
}

// Label returns the display name of the type.
func (t AutomationType) Label() string {
	if l, ok := automationLabels[t]; ok {
		return l
	}
	return string(t)
}

// ReportFormat is an attachment/rendering format for report emails.
type ReportFormat string

const (
	FormatHTML ReportFormat = "html"
	FormatPDF  ReportFormat = "pdf"
	FormatCSV  ReportFormat = "csv"
)

// Valid reports whether f is a supported format.
func (f ReportFormat) Valid() bool {
	switch f {
	case FormatHTML, FormatPDF, FormatCSV:
		return true
	}
	return false
}

// Schedule is when an automation fires. DayOfWeek (0=Sunday) is only
// meaningful for weekly reports and DayOfMonth only for monthly reports.
type Schedule struct {
	Time       string `json:"time"`
	Timezone   string `json:"timezone"`
	DayOfWeek  *int   `json:"dayOfWeek"`
	DayOfMonth *int   `json:"dayOfMonth"`
}

// Recipients selects which audiences receive the email.
type Recipients struct {
	Admins               bool `json:"admins"`
	OrganizationManagers bool `json:"organizationManagers"`
	DepartmentHeads      bool `json:"departmentHeads"`
	Technicians          bool `json:"technicians"`
}

// AutomationConfig is a scheduled email job. Organization and EmailTemplate
// are optional IDs; an empty Organization means the automation is global.
type AutomationConfig struct {
	ID            string         `json:"id,omitempty"`
	Name          string         `json:"name"`
	Type          AutomationType `json:"type"`
	Organization  string         `json:"organization,omitempty"`
	IsEnabled     bool           `json:"isEnabled"`
	Schedule      Schedule       `json:"schedule"`
	Recipients    Recipients     `json:"recipients"`
	ReportFormat  []ReportFormat `json:"reportFormat"`
	EmailTemplate string         `json:"emailTemplate,omitempty"`
	LastSent      *time.Time     `json:"lastSent,omitempty"`
	Version       string         `json:"version,omitempty"`
}

// Normalize drops schedule fields that do not apply to the automation's
// type, so a daily report never carries a day of month.
func (c *AutomationConfig) Normalize() {
	if c.Type != AutomationWeeklyReport {
		c.Schedule.DayOfWeek = nil
	}
	if c.Type != AutomationMonthlyReport {
		c.Schedule.DayOfMonth = nil
	}
	if c.Type != AutomationDailyOpenTickets {
		// Technicians are only offered for the open-tickets digest.
		c.Recipients.Technicians = false
	}
}

// EmailTemplate is a selectable template for automation emails.
type EmailTemplate struct {
	ID   string         `json:"id"`
	Name string         `json:"name"`
	Type AutomationType `json:"type,omitempty"`
}

// Organization is a tenant organization an automation can be scoped to.
type Organization struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
