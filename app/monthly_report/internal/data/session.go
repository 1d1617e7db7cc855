package data

import (
	"context"
	"sync"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/iWorld-y/monthly_report/app/monthly_report/internal/biz"
	"github.com/iWorld-y/monthly_report/app/monthly_report/internal/conf"
)

const (
	defaultSessionTTL  = 2 * time.Hour
	defaultMaxSessions = 10000
)

type sessionEntry struct {
	mu        sync.Mutex
	session   *biz.Session
	expiresAt time.Time
}

// sessionRepo 进程内会话存储，容量有上限，条目按 TTL 过期
type sessionRepo struct {
	cache *lru.Cache[string, *sessionEntry]
	ttl   time.Duration
	log   *log.Helper
	now   func() time.Time
}

func NewSessionRepo(c *conf.Conversation, logger log.Logger) (biz.SessionRepo, error) {
	ttl := defaultSessionTTL
	size := defaultMaxSessions
	if c != nil {
		ttl = conf.Duration(c.SessionTtl, defaultSessionTTL)
		if c.MaxSessions > 0 {
			size = int(c.MaxSessions)
		}
	}
	cache, err := lru.New[string, *sessionEntry](size)
	if err != nil {
		return nil, err
	}
	return &sessionRepo{
		cache: cache,
		ttl:   ttl,
		log:   log.NewHelper(logger),
		now:   time.Now,
	}, nil
}

func (r *sessionRepo) Create(ctx context.Context, s *biz.Session) (*biz.Session, error) {
	c := s.Clone()
	c.ID = uuid.NewString()
	if evicted := r.cache.Add(c.ID, &sessionEntry{session: c, expiresAt: r.now().Add(r.ttl)}); evicted {
		r.log.WithContext(ctx).Warn("session store full, evicted least recently used session")
	}
	return c.Clone(), nil
}

func (r *sessionRepo) Get(_ context.Context, id string) (*biz.Session, error) {
	e, ok := r.cache.Get(id)
	if !ok {
		return nil, biz.ErrSessionNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if !r.alive(id, e) {
		return nil, biz.ErrSessionNotFound
	}
	return e.session.Clone(), nil
}

func (r *sessionRepo) Update(_ context.Context, id string, fn func(*biz.Session) error) (*biz.Session, error) {
	e, ok := r.cache.Get(id)
	if !ok {
		return nil, biz.ErrSessionNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if !r.alive(id, e) {
		return nil, biz.ErrSessionNotFound
	}

	c := e.session.Clone()
	if err := fn(c); err != nil {
		return nil, err
	}
	e.session = c
	e.expiresAt = r.now().Add(r.ttl)
	return c.Clone(), nil
}

func (r *sessionRepo) Delete(_ context.Context, id string) error {
	e, ok := r.cache.Get(id)
	if !ok {
		return biz.ErrSessionNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return biz.ErrSessionNotFound
	}
	e.session = nil
	r.cache.Remove(id)
	return nil
}

// alive 需持有 e.mu；过期条目会被移除
func (r *sessionRepo) alive(id string, e *sessionEntry) bool {
	if e.session == nil {
		return false
	}
	if r.now().After(e.expiresAt) {
		e.session = nil
		r.cache.Remove(id)
		return false
	}
	return true
}
