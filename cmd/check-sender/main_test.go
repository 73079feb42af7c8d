package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kloudinfotech/helpdesk-console/internal/domain"
)

const sampleRules = `
enabled: true
whitelist: [acme.io, partner.org]
blacklist: [spam.io]
cases:
  - sender: bob@acme.io
    expect: accept
  - sender: eve@SPAM.io
    expect: reject
  - sender: someone@elsewhere.net
    expect: reject
`

func TestParseRules(t *testing.T) {
	rf, err := parseRules([]byte(sampleRules))
	if err != nil {
		t.Fatalf("parseRules: %v", err)
	}
	if !rf.Enabled || len(rf.Whitelist) != 2 || len(rf.Cases) != 3 {
		t.Fatalf("unexpected rules %+v", rf)
	}
}

func TestParseRules_JSON(t *testing.T) {
	rf, err := parseRules([]byte(`{"enabled":false,"whitelist":[],"blacklist":["x.io"]}`))
	if err != nil {
		t.Fatalf("parseRules: %v", err)
	}
	if rf.Enabled || len(rf.Blacklist) != 1 {
		t.Fatalf("unexpected rules %+v", rf)
	}
}

func TestParseRules_BadExpectation(t *testing.T) {
	_, err := parseRules([]byte("cases:\n  - sender: a@b.io\n    expect: maybe\n"))
	if err == nil {
		t.Fatal("expected an error for an unknown expectation")
	}
}

func TestReport_AllPass(t *testing.T) {
	rf, err := parseRules([]byte(sampleRules))
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if !report(&out, "sample.yaml", rf) {
		t.Fatalf("expected all checks to pass:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "OVERALL: PASS") {
		t.Errorf("missing overall verdict:\n%s", out.String())
	}
}

func TestReport_ExpectationMismatchFails(t *testing.T) {
	rf := ruleFile{
		Enabled:   true,
		Blacklist: []string{"spam.io"},
		Cases:     []caseSpec{{Sender: "eve@spam.io", Expect: domain.Accept}},
	}
	var out bytes.Buffer
	if report(&out, "inline", rf) {
		t.Fatalf("expected failure:\n%s", out.String())
	}
}

func TestCheckNormalized(t *testing.T) {
	tests := []struct {
		name   string
		list   []string
		passed bool
	}{
		{"clean", []string{"acme.io", "b.org"}, true},
		{"upper case", []string{"Acme.io"}, false},
		{"leading at", []string{"@acme.io"}, false},
		{"duplicate", []string{"acme.io", "acme.io"}, false},
		{"empty list", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := checkNormalized("whitelist", tt.list)
			if r.Passed != tt.passed {
				t.Errorf("passed = %v, want %v (detail %q)", r.Passed, tt.passed, r.Detail)
			}
		})
	}
}

func TestCheckOverlap(t *testing.T) {
	r := checkOverlap(domain.DomainRuleSet{Whitelist: []string{"acme.io"}, Blacklist: []string{"ACME.io"}})
	if r.Passed {
		t.Fatal("expected overlap to fail")
	}
	if !strings.Contains(r.Detail, "acme.io") {
		t.Errorf("detail %q does not name the domain", r.Detail)
	}
}

func TestCheckSender_Disabled(t *testing.T) {
	r := checkSender(domain.DomainRuleSet{Blacklist: []string{"spam.io"}}, caseSpec{Sender: "eve@spam.io", Expect: domain.Accept})
	if !r.Passed {
		t.Fatalf("disabled rules accept everyone: %+v", r)
	}
}

func TestLoadRules_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte(sampleRules), 0o600); err != nil {
		t.Fatal(err)
	}
	rf, source, err := loadRules(context.Background(), path, "", "")
	if err != nil {
		t.Fatalf("loadRules: %v", err)
	}
	if source != path || len(rf.Blacklist) != 1 {
		t.Fatalf("unexpected result %q %+v", source, rf)
	}
}

func TestLoadRules_API(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"domainRules":{"enabled":true,"whitelist":["acme.io"]}}`))
	}))
	defer srv.Close()

	rf, _, err := loadRules(context.Background(), "", srv.URL, "tok")
	if err != nil {
		t.Fatalf("loadRules: %v", err)
	}
	if !rf.Enabled || len(rf.Whitelist) != 1 || rf.Blacklist == nil {
		t.Fatalf("unexpected rules %+v", rf)
	}

	if _, _, err := loadRules(context.Background(), "", srv.URL, ""); err == nil {
		t.Fatal("expected an error without a token")
	}
}

func TestLoadRules_NeedsOneSource(t *testing.T) {
	if _, _, err := loadRules(context.Background(), "", "", ""); err == nil {
		t.Fatal("expected an error with no source")
	}
	if _, _, err := loadRules(context.Background(), "a.yaml", "http://x", "t"); err == nil {
		t.Fatal("expected an error with two sources")
	}
}
