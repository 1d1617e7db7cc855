package narrative

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"
)

// ErrNoCredential 请求与配置中都没有 API Key
var ErrNoCredential = errors.New("narrative: no api key")

// Config 模型连接参数
type Config struct {
	BaseURL     string
	APIKey      string
	Model       string
	Timeout     time.Duration
	MaxTokens   int
	Temperature float32
	RPM         int
	QPS         int
	MaxRetries  int
	CacheSize   int
	CacheTTL    time.Duration
}

// ModelBuilder 根据连接参数创建 chat model
type ModelBuilder func(ctx context.Context, cfg Config) (model.BaseChatModel, error)

// OpenAIBuilder 使用 OpenAI 兼容接口
func OpenAIBuilder(ctx context.Context, cfg Config) (model.BaseChatModel, error) {
	mc := &openai.ChatModelConfig{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		Timeout: cfg.Timeout,
	}
	if cfg.MaxTokens > 0 {
		maxTokens := cfg.MaxTokens
		mc.MaxTokens = &maxTokens
	}
	if cfg.Temperature > 0 {
		temperature := cfg.Temperature
		mc.Temperature = &temperature
	}
	cm, err := openai.NewChatModel(ctx, mc)
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}
	return cm, nil
}

const (
	defaultCacheSize = 64
	defaultCacheTTL  = 30 * time.Minute
)

type cacheEntry struct {
	gen       *Generator
	expiresAt time.Time
}

// Factory 按 API Key 缓存 Generator，所有 Generator 共享一个限流器
type Factory struct {
	cfg     Config
	build   ModelBuilder
	limiter *rate.Limiter

	mu    sync.Mutex
	cache *lru.Cache[string, cacheEntry]
	ttl   time.Duration
}

// NewFactory 创建工厂，build 为 nil 时使用 OpenAIBuilder
func NewFactory(cfg Config, build ModelBuilder) (*Factory, error) {
	if build == nil {
		build = OpenAIBuilder
	}
	size := cfg.CacheSize
	if size <= 0 {
		size = defaultCacheSize
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	cache, err := lru.New[string, cacheEntry](size)
	if err != nil {
		return nil, err
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	return &Factory{
		cfg:     cfg,
		build:   build,
		limiter: NewLimiter(cfg.RPM, cfg.QPS),
		cache:   cache,
		ttl:     ttl,
	}, nil
}

// Get 返回 apiKey 对应的 Generator；apiKey 为空时使用配置中的 Key
func (f *Factory) Get(ctx context.Context, apiKey string) (*Generator, error) {
	if apiKey == "" {
		apiKey = f.cfg.APIKey
	}
	if apiKey == "" {
		return nil, ErrNoCredential
	}

	key := cacheKey(apiKey)
	now := time.Now()

	f.mu.Lock()
	defer f.mu.Unlock()

	if entry, ok := f.cache.Get(key); ok {
		if now.Before(entry.expiresAt) {
			return entry.gen, nil
		}
		f.cache.Remove(key)
	}

	cfg := f.cfg
	cfg.APIKey = apiKey
	cm, err := f.build(ctx, cfg)
	if err != nil {
		return nil, err
	}
	gen := NewGenerator(cm, WithLimiter(f.limiter), WithRetry(cfg.MaxRetries, defaultBaseDelay))
	f.cache.Add(key, cacheEntry{gen: gen, expiresAt: now.Add(f.ttl)})
	return gen, nil
}

// Timeout 单次生成允许的最长时间
func (f *Factory) Timeout() time.Duration {
	return f.cfg.Timeout
}

// 缓存键不保留原始 Key
func cacheKey(apiKey string) string {
	sum := sha256.Sum256([]byte(apiKey))
	return hex.EncodeToString(sum[:])
}
