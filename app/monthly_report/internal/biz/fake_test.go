package biz

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

type memSessionRepo struct {
	mu       sync.Mutex
	seq      int
	sessions map[string]*Session
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: make(map[string]*Session)}
}

func (m *memSessionRepo) Create(_ context.Context, s *Session) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	s = s.Clone()
	s.ID = fmt.Sprintf("sess-%d", m.seq)
	m.sessions[s.ID] = s
	return s.Clone(), nil
}

func (m *memSessionRepo) Get(_ context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s.Clone(), nil
}

func (m *memSessionRepo) Update(_ context.Context, id string, fn func(*Session) error) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	c := s.Clone()
	if err := fn(c); err != nil {
		return nil, err
	}
	m.sessions[id] = c
	return c.Clone(), nil
}

func (m *memSessionRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, id)
	return nil
}

func (m *memSessionRepo) has(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sessions[id]
	return ok
}

type memReportRepo struct {
	mu      sync.Mutex
	seq     int64
	reports map[int64]*Report
	err     error
	upserts int
}

func newMemReportRepo() *memReportRepo {
	return &memReportRepo{reports: make(map[int64]*Report)}
}

func (m *memReportRepo) find(owner int64, month string) *Report {
	for _, r := range m.reports {
		if r.OwnerID == owner && r.ReportMonth == month {
			return r
		}
	}
	return nil
}

func (m *memReportRepo) Upsert(_ context.Context, r *Report) (*Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upserts++
	if m.err != nil {
		return nil, m.err
	}
	c := *r
	if old := m.find(r.OwnerID, r.ReportMonth); old != nil {
		c.ID, c.CreatedAt = old.ID, old.CreatedAt
	} else {
		m.seq++
		c.ID, c.CreatedAt = m.seq, time.Now()
	}
	c.UpdatedAt = time.Now()
	m.reports[c.ID] = &c
	out := c
	return &out, nil
}

func (m *memReportRepo) Create(_ context.Context, r *Report) (*Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.find(r.OwnerID, r.ReportMonth) != nil {
		return nil, ErrReportExists
	}
	m.seq++
	c := *r
	c.ID = m.seq
	m.reports[c.ID] = &c
	out := c
	return &out, nil
}

func (m *memReportRepo) Update(_ context.Context, r *Report) (*Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reports[r.ID]; !ok {
		return nil, ErrReportNotFound
	}
	c := *r
	m.reports[r.ID] = &c
	out := c
	return &out, nil
}

func (m *memReportRepo) Get(_ context.Context, owner, id int64) (*Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reports[id]
	if !ok || r.OwnerID != owner {
		return nil, ErrReportNotFound
	}
	c := *r
	return &c, nil
}

func (m *memReportRepo) List(_ context.Context, owner int64, page, size int) ([]*Report, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var all []*Report
	for _, r := range m.reports {
		if r.OwnerID == owner {
			c := *r
			all = append(all, &c)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ReportMonth > all[j].ReportMonth })
	start := (page - 1) * size
	if start >= len(all) {
		return nil, len(all), nil
	}
	end := start + size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], len(all), nil
}

func (m *memReportRepo) Delete(_ context.Context, owner, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reports[id]
	if !ok || r.OwnerID != owner {
		return ErrReportNotFound
	}
	delete(m.reports, id)
	return nil
}

func (m *memReportRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.reports)
}

type fakeGenerator struct {
	mu     sync.Mutex
	text   string
	err    error
	delay  time.Duration
	calls  int
	prompt string
	// entered 收到调用时发送信号，block 非空时阻塞直到关闭
	entered chan struct{}
	block   chan struct{}
}

func (g *fakeGenerator) Generate(ctx context.Context, _, user string) (string, error) {
	g.mu.Lock()
	g.calls++
	g.prompt = user
	g.mu.Unlock()
	if g.entered != nil {
		select {
		case g.entered <- struct{}{}:
		default:
		}
	}
	if g.block != nil {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-g.block:
		}
	}
	if g.delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(g.delay):
		}
	}
	return g.text, g.err
}

type fakeProvider struct {
	gen     *fakeGenerator
	err     error
	timeout time.Duration
	keys    []string
}

func (p *fakeProvider) Resolve(_ context.Context, apiKey string) (NarrativeGenerator, error) {
	p.keys = append(p.keys, apiKey)
	if p.err != nil {
		return nil, p.err
	}
	return p.gen, nil
}

func (p *fakeProvider) Timeout() time.Duration { return p.timeout }
