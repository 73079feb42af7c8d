package automation

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/kloudinfotech/helpdesk-console/internal/domain"
)

// DefaultTimezone is used when a draft leaves the timezone empty.
const DefaultTimezone = "UTC"

var timeOfDay = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

var weekdays = [...]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// NewDraft returns the form defaults for a new automation.
func NewDraft() domain.AutomationConfig {
	return domain.AutomationConfig{
		Type:      domain.AutomationDailyOpenTickets,
		IsEnabled: true,
		Schedule: domain.Schedule{
			Time:     "09:00",
			Timezone: DefaultTimezone,
		},
		Recipients: domain.Recipients{
			Admins:               true,
			OrganizationManagers: true,
			DepartmentHeads:      true,
		},
		ReportFormat: []domain.ReportFormat{domain.FormatHTML},
	}
}

// Days seeded when a draft switches to a weekly or monthly type.
const (
	DefaultDayOfWeek  = 1
	DefaultDayOfMonth = 1
)

// SetType switches the draft's type. The technicians recipient defaults
// to on for the open-tickets digest and off otherwise; callers may still
// change it afterwards. Weekly and monthly drafts get a day to start from.
func SetType(cfg *domain.AutomationConfig, t domain.AutomationType) error {
	if !t.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrValidation, t)
	}
	cfg.Type = t
	cfg.Recipients.Technicians = t == domain.AutomationDailyOpenTickets
	switch t {
	case domain.AutomationWeeklyReport:
		if cfg.Schedule.DayOfWeek == nil {
			d := DefaultDayOfWeek
			cfg.Schedule.DayOfWeek = &d
		}
	case domain.AutomationMonthlyReport:
		if cfg.Schedule.DayOfMonth == nil {
			d := DefaultDayOfMonth
			cfg.Schedule.DayOfMonth = &d
		}
	}
	cfg.Normalize()
	return nil
}

// Prepare fills defaults, drops fields that do not apply to the type, and
// validates the result.
func Prepare(cfg domain.AutomationConfig) (domain.AutomationConfig, error) {
	cfg.Name = strings.TrimSpace(cfg.Name)
	cfg.Organization = strings.TrimSpace(cfg.Organization)
	cfg.EmailTemplate = strings.TrimSpace(cfg.EmailTemplate)
	cfg.Schedule.Time = strings.TrimSpace(cfg.Schedule.Time)
	if strings.TrimSpace(cfg.Schedule.Timezone) == "" {
		cfg.Schedule.Timezone = DefaultTimezone
	}
	if len(cfg.ReportFormat) == 0 {
		cfg.ReportFormat = []domain.ReportFormat{domain.FormatHTML}
	}
	cfg.ReportFormat = dedupeFormats(cfg.ReportFormat)
	cfg.Normalize()
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks a draft the way the form does. It is advisory; the
// helpdesk API validates again. A missing day leaves the choice to the
// API's default, and an empty recipient set is allowed.
func Validate(cfg domain.AutomationConfig) error {
	if strings.TrimSpace(cfg.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if !cfg.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrValidation, cfg.Type)
	}
	if !timeOfDay.MatchString(cfg.Schedule.Time) {
		return fmt.Errorf("%w: time must be HH:mm", ErrValidation)
	}
	if _, err := time.LoadLocation(cfg.Schedule.Timezone); err != nil {
		return fmt.Errorf("%w: unknown timezone %q", ErrValidation, cfg.Schedule.Timezone)
	}
	switch cfg.Type {
	case domain.AutomationWeeklyReport:
		if d := cfg.Schedule.DayOfWeek; d != nil && (*d < 0 || *d > 6) {
			return fmt.Errorf("%w: day of week must be between 0 and 6", ErrValidation)
		}
	case domain.AutomationMonthlyReport:
		if d := cfg.Schedule.DayOfMonth; d != nil && (*d < 1 || *d > 31) {
			return fmt.Errorf("%w: day of month must be between 1 and 31", ErrValidation)
		}
	}
	if cfg.Type != domain.AutomationWeeklyReport && cfg.Schedule.DayOfWeek != nil {
		return fmt.Errorf("%w: day of week only applies to weekly reports", ErrValidation)
	}
	if cfg.Type != domain.AutomationMonthlyReport && cfg.Schedule.DayOfMonth != nil {
		return fmt.Errorf("%w: day of month only applies to monthly reports", ErrValidation)
	}
	if len(cfg.ReportFormat) == 0 {
		return fmt.Errorf("%w: select at least one report format", ErrValidation)
	}
	for _, f := range cfg.ReportFormat {
		if !f.Valid() {
			return fmt.Errorf("%w: unsupported report format %q", ErrValidation, f)
		}
	}
	return nil
}

// Describe renders the schedule the way the automation list shows it.
func Describe(cfg domain.AutomationConfig) string {
	tm := cfg.Schedule.Time
	if tm == "" {
		tm = "N/A"
	}
	tz := cfg.Schedule.Timezone
	if tz == "" {
		tz = DefaultTimezone
	}
	switch cfg.Type {
	case domain.AutomationWeeklyReport:
		if d := cfg.Schedule.DayOfWeek; d != nil && *d >= 0 && *d <= 6 {
			return fmt.Sprintf("%s %s, weekly on %s", tm, tz, weekdays[*d])
		}
		return fmt.Sprintf("%s %s, weekly", tm, tz)
	case domain.AutomationMonthlyReport:
		if d := cfg.Schedule.DayOfMonth; d != nil {
			return fmt.Sprintf("%s %s, monthly on day %d", tm, tz, *d)
		}
		return fmt.Sprintf("%s %s, monthly", tm, tz)
	}
	return fmt.Sprintf("%s %s, daily", tm, tz)
}

// LastSentLabel formats LastSent for the list view.
func LastSentLabel(cfg domain.AutomationConfig) string {
	if cfg.LastSent == nil || cfg.LastSent.IsZero() {
		return "Never"
	}
	return cfg.LastSent.Format("Jan 02, 2006 15:04")
}

// TemplatesFor returns the templates usable by an automation type.
func TemplatesFor(all []domain.EmailTemplate, t domain.AutomationType) []domain.EmailTemplate {
	out := make([]domain.EmailTemplate, 0, len(all))
	for _, tpl := range all {
		if tpl.Type == t {
			out = append(out, tpl)
		}
	}
	return out
}

func dedupeFormats(in []domain.ReportFormat) []domain.ReportFormat {
	out := make([]domain.ReportFormat, 0, len(in))
	for _, f := range in {
		f = domain.ReportFormat(strings.ToLower(strings.TrimSpace(string(f))))
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}
