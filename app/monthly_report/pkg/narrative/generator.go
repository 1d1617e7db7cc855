// Package narrative 调用大模型生成月报正文。
package narrative

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"golang.org/x/time/rate"
)

// ErrEmptyReply 模型返回了空内容
var ErrEmptyReply = errors.New("narrative: empty reply")

const (
	defaultMaxRetries = 3
	defaultBaseDelay  = 2 * time.Second
)

// Generator 对单个 chat model 的封装：限流、429 重试、清理 markdown 代码块
type Generator struct {
	cm         model.BaseChatModel
	limiter    *rate.Limiter
	maxRetries int
	baseDelay  time.Duration
}

// Option 配置 Generator
type Option func(*Generator)

// WithLimiter 指定限流器，多个 Generator 可共享同一个
func WithLimiter(l *rate.Limiter) Option {
	return func(g *Generator) { g.limiter = l }
}

// WithRetry 指定 429 的最大重试次数与初始退避
func WithRetry(maxRetries int, baseDelay time.Duration) Option {
	return func(g *Generator) {
		g.maxRetries = maxRetries
		g.baseDelay = baseDelay
	}
}

// NewGenerator 创建 Generator，默认不限流
func NewGenerator(cm model.BaseChatModel, opts ...Option) *Generator {
	g := &Generator{
		cm:         cm,
		limiter:    rate.NewLimiter(rate.Inf, 1),
		maxRetries: defaultMaxRetries,
		baseDelay:  defaultBaseDelay,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// NewLimiter 按每分钟请求数与突发量创建限流器，rpm <= 0 表示不限流
func NewLimiter(rpm, burst int) *rate.Limiter {
	if burst < 1 {
		burst = 1
	}
	if rpm <= 0 {
		return rate.NewLimiter(rate.Inf, burst)
	}
	return rate.NewLimiter(rate.Limit(float64(rpm)/60.0), burst)
}

// Generate 发送 system/user 两条消息并返回清理后的正文
func (g *Generator) Generate(ctx context.Context, system, user string) (string, error) {
	messages := []*schema.Message{
		{Role: schema.System, Content: system},
		{Role: schema.User, Content: user},
	}

	var lastErr error
	for i := 0; i <= g.maxRetries; i++ {
		if err := g.limiter.Wait(ctx); err != nil {
			return "", err
		}

		resp, err := g.cm.Generate(ctx, messages)
		if err != nil {
			if isRateLimited(err) && i < g.maxRetries {
				lastErr = err
				if err := sleep(ctx, g.baseDelay*time.Duration(1<<i)); err != nil {
					return "", err
				}
				continue
			}
			return "", fmt.Errorf("narrative: generate: %w", err)
		}

		content := stripFence(resp.Content)
		if content == "" {
			return "", ErrEmptyReply
		}
		return content, nil
	}
	return "", fmt.Errorf("narrative: failed after retries: %w", lastErr)
}

func isRateLimited(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(strings.ToLower(msg), "too many requests")
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// stripFence 去掉模型偶尔包裹在外层的 ``` 代码块
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```markdown")
	s = strings.TrimPrefix(s, "```md")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
