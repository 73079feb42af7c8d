// Command check-sender evaluates sender addresses against a domain rule
// set and prints a PASS/FAIL report. Rules come from a YAML or JSON file,
// or from the helpdesk API when --api and --token are given.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/kloudinfotech/helpdesk-console/internal/domain"
	"github.com/kloudinfotech/helpdesk-console/internal/helpdeskapi"
	"github.com/kloudinfotech/helpdesk-console/internal/service/domainrules"
)

// ruleFile is the on-disk format. Cases are optional expectations.
type ruleFile struct {
	Enabled   bool       `yaml:"enabled"`
	Whitelist []string   `yaml:"whitelist"`
	Blacklist []string   `yaml:"blacklist"`
	Cases     []caseSpec `yaml:"cases"`
}

type caseSpec struct {
	Sender string          `yaml:"sender"`
	Expect domain.Decision `yaml:"expect"`
}

type checkResult struct {
	Name    string
	Passed  bool
	Detail  string
	Elapsed time.Duration
}

func main() {
	rulesPath := pflag.StringP("rules", "r", "", "YAML or JSON file with enabled, whitelist, blacklist and cases")
	apiURL := pflag.String("api", "", "helpdesk API base URL to read the stored rules from")
	token := pflag.String("token", os.Getenv("HELPDESK_TOKEN"), "bearer token for --api (default $HELPDESK_TOKEN)")
	timeout := pflag.Duration("timeout", 15*time.Second, "timeout for --api")
	pflag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	rf, source, err := loadRules(ctx, *rulesPath, *apiURL, *token)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		os.Exit(2)
	}
	for _, s := range pflag.Args() {
		rf.Cases = append(rf.Cases, caseSpec{Sender: s})
	}

	if !report(os.Stdout, source, rf) {
		os.Exit(1)
	}
}

func loadRules(ctx context.Context, path, apiURL, token string) (ruleFile, string, error) {
	switch {
	case path != "" && apiURL != "":
		return ruleFile{}, "", fmt.Errorf("use either --rules or --api, not both")
	case path != "":
		data, err := os.ReadFile(path)
		if err != nil {
			return ruleFile{}, "", err
		}
		rf, err := parseRules(data)
		return rf, path, err
	case apiURL != "":
		if token == "" {
			return ruleFile{}, "", fmt.Errorf("--api needs --token or HELPDESK_TOKEN")
		}
		client := helpdeskapi.New(apiURL, nil)
		rules, err := client.GetDomainRules(helpdeskapi.ContextWithToken(ctx, token))
		if err != nil {
			return ruleFile{}, "", fmt.Errorf("load rules from %s: %w", apiURL, err)
		}
		return ruleFile{Enabled: rules.Enabled, Whitelist: rules.Whitelist, Blacklist: rules.Blacklist}, apiURL, nil
	}
	return ruleFile{}, "", fmt.Errorf("one of --rules or --api is required")
}

// parseRules reads YAML; JSON parses as YAML too.
func parseRules(data []byte) (ruleFile, error) {
	var rf ruleFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return rf, fmt.Errorf("parse rules: %w", err)
	}
	for i, c := range rf.Cases {
		if c.Expect != "" && c.Expect != domain.Accept && c.Expect != domain.Reject {
			return rf, fmt.Errorf("case %d: expect must be %q or %q", i+1, domain.Accept, domain.Reject)
		}
	}
	return rf, nil
}

func (rf ruleFile) ruleSet() domain.DomainRuleSet {
	return domain.DomainRuleSet{Enabled: rf.Enabled, Whitelist: rf.Whitelist, Blacklist: rf.Blacklist}
}

// report prints the checks and returns whether all passed.
func report(w io.Writer, source string, rf ruleFile) bool {
	rules := rf.ruleSet()

	fmt.Fprintln(w, "=========================================================")
	fmt.Fprintln(w, " Sender Domain Rule Check")
	fmt.Fprintln(w, "=========================================================")
	fmt.Fprintf(w, "Source:       %s\n", source)
	fmt.Fprintf(w, "Enforcement:  %s\n", enabledLabel(rules.Enabled))
	fmt.Fprintf(w, "Whitelist:    %d domain(s)\n", len(rules.Whitelist))
	fmt.Fprintf(w, "Blacklist:    %d domain(s)\n", len(rules.Blacklist))
	fmt.Fprintln(w, "---------------------------------------------------------")

	var results []checkResult
	results = append(results, checkNormalized("whitelist", rules.Whitelist))
	results = append(results, checkNormalized("blacklist", rules.Blacklist))
	results = append(results, checkOverlap(rules))
	for _, c := range rf.Cases {
		results = append(results, checkSender(rules, c))
	}

	allPassed := true
	for i, r := range results {
		status := "PASS"
		if !r.Passed {
			status = "FAIL"
			allPassed = false
		}
		fmt.Fprintf(w, "  [%d] %-45s %s  (%s)\n", i+1, r.Name, status, r.Elapsed.Round(time.Microsecond))
		if r.Detail != "" {
			for _, line := range strings.Split(r.Detail, "\n") {
				fmt.Fprintf(w, "      %s\n", line)
			}
		}
	}

	fmt.Fprintln(w, "=========================================================")
	if allPassed {
		fmt.Fprintln(w, "  OVERALL: PASS")
	} else {
		fmt.Fprintln(w, "  OVERALL: FAIL")
	}
	fmt.Fprintln(w, "=========================================================")
	return allPassed
}

func enabledLabel(b bool) string {
	if b {
		return "enabled"
	}
	return "disabled (every sender is accepted)"
}

// checkNormalized flags entries that are not stored in normalized form or
// appear twice.
func checkNormalized(name string, list []string) checkResult {
	start := time.Now()
	title := fmt.Sprintf("%s entries are normalized and unique", name)

	var problems []string
	seen := make(map[string]bool, len(list))
	for _, entry := range list {
		n := domainrules.Normalize(entry)
		switch {
		case n == "":
			problems = append(problems, fmt.Sprintf("%q is not a valid domain", entry))
		case n != entry:
			problems = append(problems, fmt.Sprintf("%q should be stored as %q", entry, n))
		}
		if n != "" && seen[n] {
			problems = append(problems, fmt.Sprintf("%q appears more than once", n))
		}
		seen[n] = true
	}
	if len(problems) > 0 {
		return checkResult{Name: title, Passed: false, Detail: strings.Join(problems, "\n"), Elapsed: time.Since(start)}
	}
	return checkResult{Name: title, Passed: true, Elapsed: time.Since(start)}
}

// checkOverlap flags domains listed on both lists; the blacklist wins for
// them, which is rarely what was intended.
func checkOverlap(rules domain.DomainRuleSet) checkResult {
	start := time.Now()
	title := "no domain is on both lists"

	var both []string
	for _, d := range rules.Whitelist {
		if domainrules.Contains(rules.Blacklist, d) {
			both = append(both, domainrules.Normalize(d))
		}
	}
	if len(both) > 0 {
		return checkResult{Name: title, Passed: false, Detail: "blacklisted despite whitelist: " + strings.Join(both, ", "), Elapsed: time.Since(start)}
	}
	return checkResult{Name: title, Passed: true, Elapsed: time.Since(start)}
}

func checkSender(rules domain.DomainRuleSet, c caseSpec) checkResult {
	start := time.Now()
	sd := domainrules.SenderDomain(c.Sender)
	title := fmt.Sprintf("sender %s", c.Sender)
	if sd == "" {
		return checkResult{Name: title, Passed: false, Detail: "not an email address or domain", Elapsed: time.Since(start)}
	}

	got := domainrules.Evaluate(rules, sd)
	detail := fmt.Sprintf("domain=%s decision=%s", sd, got)
	if c.Expect == "" {
		return checkResult{Name: title, Passed: true, Detail: detail, Elapsed: time.Since(start)}
	}
	detail += fmt.Sprintf(" expected=%s", c.Expect)
	return checkResult{Name: title, Passed: got == c.Expect, Detail: detail, Elapsed: time.Since(start)}
}
