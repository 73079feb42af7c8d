package automation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/kloudinfotech/helpdesk-console/internal/domain"
	"github.com/kloudinfotech/helpdesk-console/internal/pkg/distlock"
)

var errNetwork = errors.New("connection reset")

type mockRepo struct {
	mu      sync.Mutex
	items   map[string]domain.AutomationConfig
	nextID  int
	runs    map[string]int
	failRun bool
}

func newMockRepo() *mockRepo {
	return &mockRepo{items: make(map[string]domain.AutomationConfig), runs: make(map[string]int)}
}

func (m *mockRepo) ListAutomations(_ context.Context) ([]domain.AutomationConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.AutomationConfig, 0, len(m.items))
	for _, a := range m.items {
		out = append(out, a)
	}
	return out, nil
}

func (m *mockRepo) CreateAutomation(_ context.Context, cfg domain.AutomationConfig) (domain.AutomationConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	cfg.ID = fmt.Sprintf("a%d", m.nextID)
	m.items[cfg.ID] = cfg
	return cfg, nil
}

func (m *mockRepo) UpdateAutomation(_ context.Context, id string, cfg domain.AutomationConfig) (domain.AutomationConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[id] = cfg
	return cfg, nil
}

func (m *mockRepo) SetAutomationEnabled(_ context.Context, id string, enabled bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a := m.items[id]
	a.IsEnabled = enabled
	m.items[id] = a
	return nil
}

func (m *mockRepo) DeleteAutomation(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, id)
	return nil
}

func (m *mockRepo) RunAutomation(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failRun {
		return errNetwork
	}
	m.runs[id]++
	return nil
}

func (m *mockRepo) ListEmailTemplates(_ context.Context) ([]domain.EmailTemplate, error) {
	return []domain.EmailTemplate{{ID: "t1", Name: "Digest", Type: domain.AutomationDailyOpenTickets}}, nil
}

func (m *mockRepo) ListOrganizations(_ context.Context) ([]domain.Organization, error) {
	return []domain.Organization{{ID: "o1", Name: "Acme"}}, nil
}

func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return client
}

func TestCreate_ValidatesBeforeCalling(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, nil)

	if _, err := svc.Create(context.Background(), NewDraft()); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for missing name, got %v", err)
	}
	if len(repo.items) != 0 {
		t.Fatal("invalid draft must not reach the API")
	}
}

func TestCreate_SendsNormalizedConfig(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, nil)

	d := validDraft()
	d.ID = "client-supplied"
	d.Type = domain.AutomationDailyReport
	d.Schedule.DayOfMonth = intPtr(4)

	got, err := svc.Create(context.Background(), d)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got.ID != "a1" {
		t.Errorf("server must assign the id, got %q", got.ID)
	}
	if got.Schedule.DayOfMonth != nil {
		t.Error("daily report sent with a day of month")
	}
}

func TestUpdate(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	created, _ := svc.Create(ctx, validDraft())
	created.Name = "Renamed"
	if _, err := svc.Update(ctx, created.ID, created); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if repo.items[created.ID].Name != "Renamed" {
		t.Fatal("update not applied")
	}
	if _, err := svc.Update(ctx, "", created); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for empty id, got %v", err)
	}
}

func TestToggle(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	created, _ := svc.Create(ctx, validDraft())
	enabled, err := svc.Toggle(ctx, created.ID)
	if err != nil || enabled {
		t.Fatalf("Toggle = %v, %v; want false", enabled, err)
	}
	enabled, _ = svc.Toggle(ctx, created.ID)
	if !enabled {
		t.Fatal("second toggle should enable")
	}
	if _, err := svc.Toggle(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	created, _ := svc.Create(ctx, validDraft())
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatal(err)
	}
	list, _ := svc.List(ctx)
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %d", len(list))
	}
}

func TestRun_DeduplicatesDoubleTrigger(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, distlock.Factory(setupTestRedis(t)))
	ctx := context.Background()

	if err := svc.Run(ctx, "a1"); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if err := svc.Run(ctx, "a1"); !errors.Is(err, ErrRunInProgress) {
		t.Fatalf("expected ErrRunInProgress, got %v", err)
	}
	if err := svc.Run(ctx, "a2"); err != nil {
		t.Fatalf("other automation must not be blocked: %v", err)
	}
	if repo.runs["a1"] != 1 {
		t.Fatalf("a1 ran %d times, want 1", repo.runs["a1"])
	}
}

func TestRun_FailureReleasesLock(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, distlock.Factory(setupTestRedis(t)))
	ctx := context.Background()

	repo.failRun = true
	if err := svc.Run(ctx, "a1"); !errors.Is(err, errNetwork) {
		t.Fatalf("expected network error, got %v", err)
	}
	repo.failRun = false
	if err := svc.Run(ctx, "a1"); err != nil {
		t.Fatalf("retry after failure should run: %v", err)
	}
}

func TestRun_LockBackendDown(t *testing.T) {
	repo := newMockRepo()
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	defer client.Close()
	svc := NewService(repo, distlock.Factory(client))

	if err := svc.Run(context.Background(), "a1"); err != nil {
		t.Fatalf("run should proceed without lock backend: %v", err)
	}
	if repo.runs["a1"] != 1 {
		t.Fatal("run not triggered")
	}
}

func TestCatalog(t *testing.T) {
	svc := NewService(newMockRepo(), nil)
	c, err := svc.Catalog(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Templates) != 1 || len(c.Organizations) != 1 || c.Automations == nil {
		t.Fatalf("unexpected catalog %+v", c)
	}
}
