package domainrules

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"

	"github.com/kloudinfotech/helpdesk-console/internal/domain"
)

const testSession = "sess-1"

var errNetwork = errors.New("connection refused")

type mockRepo struct {
	mu      sync.Mutex
	stored  domain.DomainRuleSet
	saves   int
	failGet bool
	failPut bool
}

func (m *mockRepo) GetDomainRules(_ context.Context) (domain.DomainRuleSet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGet {
		return domain.DomainRuleSet{}, errNetwork
	}
	return m.stored.Clone(), nil
}

func (m *mockRepo) SaveDomainRules(_ context.Context, r domain.DomainRuleSet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failPut {
		return errNetwork
	}
	m.saves++
	m.stored = r.Clone()
	return nil
}

type memDrafts struct {
	mu sync.Mutex
	m  map[string]Draft
}

func newMemDrafts() *memDrafts { return &memDrafts{m: make(map[string]Draft)} }

func (s *memDrafts) Get(_ context.Context, id string) (*Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.m[id]
	if !ok {
		return nil, nil
	}
	d.Rules = d.Rules.Clone()
	d.Saved = d.Saved.Clone()
	return &d, nil
}

func (s *memDrafts) Put(_ context.Context, id string, d *Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[id] = *d
	return nil
}

func (s *memDrafts) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, id)
	return nil
}

func newTestService(stored domain.DomainRuleSet) (*Service, *mockRepo) {
	repo := &mockRepo{stored: stored}
	return NewService(repo, newMemDrafts()), repo
}

func TestOpen_NormalizesStoredLists(t *testing.T) {
	svc, _ := newTestService(domain.DomainRuleSet{
		Enabled:   true,
		Whitelist: []string{"@Corp.com", "corp.com", "b.io"},
	})
	d, err := svc.Open(context.Background(), testSession)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !slices.Equal(d.Rules.Whitelist, []string{"corp.com", "b.io"}) {
		t.Fatalf("unexpected whitelist %v", d.Rules.Whitelist)
	}
	if d.Dirty() {
		t.Error("freshly opened draft must not be dirty")
	}
}

func TestOpen_NetworkError(t *testing.T) {
	svc, repo := newTestService(domain.DomainRuleSet{})
	repo.failGet = true
	if _, err := svc.Open(context.Background(), testSession); !errors.Is(err, errNetwork) {
		t.Fatalf("expected network error, got %v", err)
	}
}

func TestAdd_DuplicateLeavesDraftUnchanged(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(domain.DomainRuleSet{Enabled: true, Blacklist: []string{}})

	if _, err := svc.Add(ctx, testSession, domain.Blacklist, "spam.com"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	_, err := svc.Add(ctx, testSession, domain.Blacklist, "SPAM.com ")
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	d, _ := svc.Draft(ctx, testSession)
	if len(d.Rules.Blacklist) != 1 {
		t.Fatalf("blacklist length = %d, want 1", len(d.Rules.Blacklist))
	}
}

func TestSave_PersistsWholeSet(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(domain.DomainRuleSet{})

	svc.SetEnabled(ctx, testSession, true)
	svc.Add(ctx, testSession, domain.Whitelist, "corp.com")
	d, _ := svc.Add(ctx, testSession, domain.Blacklist, "spam.com")
	if !d.Dirty() {
		t.Fatal("draft should be dirty before save")
	}

	d, err := svc.Save(ctx, testSession)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if d.Dirty() || d.SavedAt == nil {
		t.Fatalf("draft should be clean after save: %+v", d)
	}
	if repo.saves != 1 || !repo.stored.Enabled || !slices.Equal(repo.stored.Whitelist, []string{"corp.com"}) {
		t.Fatalf("unexpected stored value %+v", repo.stored)
	}
}

func TestSave_FailureKeepsDraftDirty(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(domain.DomainRuleSet{})
	svc.Add(ctx, testSession, domain.Whitelist, "corp.com")

	repo.failPut = true
	if _, err := svc.Save(ctx, testSession); !errors.Is(err, errNetwork) {
		t.Fatalf("expected network error, got %v", err)
	}
	d, _ := svc.Draft(ctx, testSession)
	if !d.Dirty() {
		t.Fatal("failed save must leave unsaved changes")
	}
	if !slices.Equal(d.Rules.Whitelist, []string{"corp.com"}) {
		t.Fatalf("draft content lost: %v", d.Rules.Whitelist)
	}

	repo.failPut = false
	if d, err := svc.Save(ctx, testSession); err != nil || d.Dirty() {
		t.Fatalf("retry should succeed: %v", err)
	}
}

func TestSave_LastWriteWins(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepo{}
	drafts := newMemDrafts()
	svc := NewService(repo, drafts)

	svc.Add(ctx, "a", domain.Whitelist, "first.com")
	svc.Add(ctx, "b", domain.Whitelist, "second.com")
	svc.Save(ctx, "a")
	svc.Save(ctx, "b")

	if !slices.Equal(repo.stored.Whitelist, []string{"second.com"}) {
		t.Fatalf("expected last save to win, got %v", repo.stored.Whitelist)
	}
}

func TestRemove_NonMemberNoop(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(domain.DomainRuleSet{Whitelist: []string{"a.com"}})
	d, err := svc.Remove(ctx, testSession, domain.Whitelist, "zzz.com")
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if d.Dirty() {
		t.Error("removing a non-member must not dirty the draft")
	}
}

func TestPreviewAndCheck(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(domain.DomainRuleSet{Enabled: true})

	svc.Add(ctx, testSession, domain.Blacklist, "spam.com")

	got, err := svc.Preview(ctx, testSession, "bot@spam.com")
	if err != nil || got != domain.Reject {
		t.Fatalf("Preview = %s, %v; want reject", got, err)
	}
	got, err = svc.Check(ctx, "bot@spam.com")
	if err != nil || got != domain.Accept {
		t.Fatalf("Check against stored rules = %s, %v; want accept", got, err)
	}
}

func TestDiscard(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(domain.DomainRuleSet{})
	svc.Add(ctx, testSession, domain.Whitelist, "a.com")
	if err := svc.Discard(ctx, testSession); err != nil {
		t.Fatal(err)
	}
	d, _ := svc.Draft(ctx, testSession)
	if d.Dirty() || len(d.Rules.Whitelist) != 0 {
		t.Fatalf("expected fresh draft after discard, got %+v", d.Rules)
	}
}
