package service

import (
	"context"
	"fmt"
	"strconv"

	jwtmw "github.com/go-kratos/kratos/v2/middleware/auth/jwt"
	"github.com/go-kratos/kratos/v2/transport"
	"github.com/golang-jwt/jwt/v5"

	"github.com/iWorld-y/monthly_report/app/monthly_report/internal/biz"
	"github.com/iWorld-y/monthly_report/app/monthly_report/internal/conf"
)

const (
	apiKeyHeader       = "X-OpenAI-API-Key"
	userIDClaim        = "user_id"
	defaultDemoOwnerID = 3
)

// Identity 从请求上下文中解析当前用户
type Identity struct {
	enabled bool
	demoID  int64
}

func NewIdentity(c *conf.Auth) *Identity {
	id := &Identity{demoID: defaultDemoOwnerID}
	if c != nil {
		id.enabled = c.Enabled
		if c.DemoOwnerId > 0 {
			id.demoID = c.DemoOwnerId
		}
	}
	return id
}

// OwnerID 开启认证时取 JWT 中的 user_id，否则使用演示用户
func (i *Identity) OwnerID(ctx context.Context) (int64, error) {
	if !i.enabled {
		return i.demoID, nil
	}
	claims, ok := jwtmw.FromContext(ctx)
	if !ok {
		return 0, jwtmw.ErrMissingJwtToken
	}
	mc, ok := claims.(jwt.MapClaims)
	if !ok {
		return 0, jwtmw.ErrTokenInvalid
	}
	id, err := claimInt(mc[userIDClaim])
	if err != nil {
		return 0, biz.ErrInvalidInput("token claim %s: %v", userIDClaim, err)
	}
	return id, nil
}

func claimInt(v interface{}) (int64, error) {
	switch x := v.(type) {
	case float64:
		return int64(x), nil
	case int64:
		return x, nil
	case int:
		return int64(x), nil
	case string:
		return strconv.ParseInt(x, 10, 64)
	default:
		return 0, fmt.Errorf("unexpected type %T", v)
	}
}

// apiKeyFromContext 读取请求头中的 LLM API Key
func apiKeyFromContext(ctx context.Context) string {
	if tr, ok := transport.FromServerContext(ctx); ok {
		return tr.RequestHeader().Get(apiKeyHeader)
	}
	return ""
}
