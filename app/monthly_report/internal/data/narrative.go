package data

import (
	"context"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/monthly_report/app/monthly_report/internal/biz"
	"github.com/iWorld-y/monthly_report/app/monthly_report/internal/conf"
	"github.com/iWorld-y/monthly_report/app/monthly_report/pkg/narrative"
)

const defaultLLMTimeout = 60 * time.Second

type narrativeProvider struct {
	factory *narrative.Factory
	log     *log.Helper
}

// NewNarrativeProvider 按请求 Key 或配置 Key 获取 LLM 客户端
func NewNarrativeProvider(c *conf.LLM, logger log.Logger) (biz.NarrativeProvider, error) {
	return newNarrativeProvider(c, nil, logger)
}

func newNarrativeProvider(c *conf.LLM, build narrative.ModelBuilder, logger log.Logger) (biz.NarrativeProvider, error) {
	if c == nil {
		c = &conf.LLM{}
	}
	factory, err := narrative.NewFactory(narrative.Config{
		BaseURL:     c.BaseUrl,
		APIKey:      c.ApiKey,
		Model:       c.Model,
		Timeout:     conf.Duration(c.Timeout, defaultLLMTimeout),
		MaxTokens:   int(c.MaxTokens),
		Temperature: c.Temperature,
		RPM:         int(c.Rpm),
		QPS:         int(c.Qps),
		MaxRetries:  int(c.MaxRetries),
		CacheSize:   int(c.CacheSize),
		CacheTTL:    conf.Duration(c.CacheTtl, 0),
	}, build)
	if err != nil {
		return nil, err
	}
	return &narrativeProvider{factory: factory, log: log.NewHelper(logger)}, nil
}

func (p *narrativeProvider) Resolve(ctx context.Context, apiKey string) (biz.NarrativeGenerator, error) {
	gen, err := p.factory.Get(ctx, apiKey)
	if err != nil {
		return nil, err
	}
	p.log.WithContext(ctx).Debugf("narrative client resolved, request key: %t", apiKey != "")
	return gen, nil
}

func (p *narrativeProvider) Timeout() time.Duration {
	return p.factory.Timeout()
}
