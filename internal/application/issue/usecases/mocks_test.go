package usecases

import (
	"context"
	"fmt"
	"sync"

	"civicgrid/internal/application/issue/dto"
	"civicgrid/internal/domain/category"
	"civicgrid/internal/domain/issue"
	"civicgrid/internal/domain/shared/events"
	"civicgrid/internal/domain/user"
)

type mockIssueRepository struct {
	SaveFunc               func(ctx context.Context, i *issue.Issue) error
	UpdateFunc             func(ctx context.Context, i *issue.Issue) error
	FindByIDFunc           func(ctx context.Context, id uint) (*issue.Issue, error)
	FindByTicketNumberFunc func(ctx context.Context, ticketNumber string) (*issue.Issue, error)
	ListFunc               func(ctx context.Context, filter issue.IssueFilter) ([]*issue.Issue, int64, error)
	DeleteAfterMediaFunc   func(ctx context.Context, issueID uint) error
	StatsFunc              func(ctx context.Context, wardID *uint) (*issue.Stats, error)

	saved            []*issue.Issue
	updated          []*issue.Issue
	deletedAfterFor  []uint
	findByIDCalls    int
	statsCalls       int
}

func (m *mockIssueRepository) Save(ctx context.Context, i *issue.Issue) error {
	m.saved = append(m.saved, i)
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, i)
	}
	if i.ID() == 0 {
		_ = i.SetID(uint(len(m.saved)))
	}
	i.ClearPending()
	return nil
}

func (m *mockIssueRepository) Update(ctx context.Context, i *issue.Issue) error {
	m.updated = append(m.updated, i)
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, i)
	}
	i.ClearPending()
	return nil
}

func (m *mockIssueRepository) FindByID(ctx context.Context, id uint) (*issue.Issue, error) {
	m.findByIDCalls++
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockIssueRepository) FindByTicketNumber(ctx context.Context, ticketNumber string) (*issue.Issue, error) {
	if m.FindByTicketNumberFunc != nil {
		return m.FindByTicketNumberFunc(ctx, ticketNumber)
	}
	return nil, nil
}

func (m *mockIssueRepository) List(ctx context.Context, filter issue.IssueFilter) ([]*issue.Issue, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockIssueRepository) DeleteAfterMedia(ctx context.Context, issueID uint) error {
	m.deletedAfterFor = append(m.deletedAfterFor, issueID)
	if m.DeleteAfterMediaFunc != nil {
		return m.DeleteAfterMediaFunc(ctx, issueID)
	}
	return nil
}

func (m *mockIssueRepository) Stats(ctx context.Context, wardID *uint) (*issue.Stats, error) {
	m.statsCalls++
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx, wardID)
	}
	return &issue.Stats{}, nil
}

type mockCategoryRepository struct {
	FindByIDFunc func(ctx context.Context, id uint) (*category.Category, error)
}

func (m *mockCategoryRepository) FindByID(ctx context.Context, id uint) (*category.Category, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockCategoryRepository) ListAll(ctx context.Context) ([]*category.Category, error) {
	return nil, nil
}

type mockUserRepository struct {
	FindByIDFunc          func(ctx context.Context, id uint) (*user.User, error)
	FindWardEngineersFunc func(ctx context.Context, wardID uint, department string) ([]*user.User, error)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepository) FindWardEngineers(ctx context.Context, wardID uint, department string) ([]*user.User, error) {
	if m.FindWardEngineersFunc != nil {
		return m.FindWardEngineersFunc(ctx, wardID, department)
	}
	return nil, nil
}

type mockWardResolver struct {
	ResolveFunc func(ctx context.Context, lat, lon float64) (uint, error)
}

func (m *mockWardResolver) Resolve(ctx context.Context, lat, lon float64) (uint, error) {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, lat, lon)
	}
	return 0, nil
}

type mockZoneLookup struct {
	ZoneIDFunc func(ctx context.Context, wardID uint) (uint, error)
}

func (m *mockZoneLookup) ZoneID(ctx context.Context, wardID uint) (uint, error) {
	if m.ZoneIDFunc != nil {
		return m.ZoneIDFunc(ctx, wardID)
	}
	return 1, nil
}

type mockAssigneePicker struct {
	SelectFunc      func(ctx context.Context, wardID uint, department string) (*uint, error)
	invalidatedWard []uint
	invalidatedDept []string
	mu              sync.Mutex
}

func (m *mockAssigneePicker) Select(ctx context.Context, wardID uint, department string) (*uint, error) {
	if m.SelectFunc != nil {
		return m.SelectFunc(ctx, wardID, department)
	}
	return nil, nil
}

func (m *mockAssigneePicker) Invalidate(wardID uint, department string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invalidatedWard = append(m.invalidatedWard, wardID)
	m.invalidatedDept = append(m.invalidatedDept, department)
}

type mockSequencer struct {
	NextFunc func(ctx context.Context, year int) (string, error)
	calls    int
}

func (m *mockSequencer) Next(ctx context.Context, year int) (string, error) {
	m.calls++
	if m.NextFunc != nil {
		return m.NextFunc(ctx, year)
	}
	return issue.FormatTicketNumber(year, uint64(m.calls)), nil
}

// mockTxManager runs the unit of work inline; the use case never sees the
// difference.
type mockTxManager struct {
	RunFunc func(ctx context.Context, fn func(ctx context.Context) error) error
	calls   int
}

func (m *mockTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	if m.RunFunc != nil {
		return m.RunFunc(ctx, fn)
	}
	return fn(ctx)
}

type mockInvalidator struct {
	mu   sync.Mutex
	refs []InvalidationRef
}

func (m *mockInvalidator) InvalidateIssue(ctx context.Context, ref InvalidationRef) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refs = append(m.refs, ref)
}

func (m *mockInvalidator) last() (InvalidationRef, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.refs) == 0 {
		return InvalidationRef{}, false
	}
	return m.refs[len(m.refs)-1], true
}

// mockNotifier signals each delivery on a channel so tests can wait for the
// asynchronous notification goroutine.
type mockNotifier struct {
	NotifyFunc func(ctx context.Context, recipient *user.User, ticketNumber, address string) error
	delivered  chan string
}

func newMockNotifier() *mockNotifier {
	return &mockNotifier{delivered: make(chan string, 4)}
}

func (m *mockNotifier) NotifyAssignment(ctx context.Context, recipient *user.User, ticketNumber, address string) error {
	var err error
	if m.NotifyFunc != nil {
		err = m.NotifyFunc(ctx, recipient, ticketNumber, address)
	}
	m.delivered <- ticketNumber
	return err
}

type mockDispatcher struct {
	mu        sync.Mutex
	published []events.DomainEvent
}

func (m *mockDispatcher) Publish(event events.DomainEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published = append(m.published, event)
	return nil
}

func (m *mockDispatcher) Subscribe(eventType string, handler events.EventHandler) {}
func (m *mockDispatcher) Start() error                                            { return nil }
func (m *mockDispatcher) Stop() error                                             { return nil }

func (m *mockDispatcher) eventTypes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.published))
	for _, e := range m.published {
		out = append(out, e.GetEventType())
	}
	return out
}

type mockReadCache struct {
	details map[uint]*dto.IssueDTO
	stats   map[string]*dto.StatsDTO
	mu      sync.Mutex
}

func newMockReadCache() *mockReadCache {
	return &mockReadCache{
		details: make(map[uint]*dto.IssueDTO),
		stats:   make(map[string]*dto.StatsDTO),
	}
}

func statsKey(wardID *uint) string {
	if wardID == nil {
		return "all"
	}
	return fmt.Sprintf("ward:%d", *wardID)
}

func (m *mockReadCache) GetIssueDetail(ctx context.Context, issueID uint) (*dto.IssueDTO, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.details[issueID]
	return d, ok
}

func (m *mockReadCache) SetIssueDetail(ctx context.Context, d *dto.IssueDTO) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.details[d.ID] = d
}

func (m *mockReadCache) GetStats(ctx context.Context, wardID *uint) (*dto.StatsDTO, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.stats[statsKey(wardID)]
	return d, ok
}

func (m *mockReadCache) SetStats(ctx context.Context, wardID *uint, d *dto.StatsDTO) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats[statsKey(wardID)] = d
}

type mockStorage struct {
	deleted chan string
}

func newMockStorage() *mockStorage {
	return &mockStorage{deleted: make(chan string, 8)}
}

func (m *mockStorage) Delete(ctx context.Context, objectKey string) error {
	m.deleted <- objectKey
	return nil
}
