package conf

import "time"

type Bootstrap struct {
	Server       *Server       `json:"server"`
	Data         *Data         `json:"data"`
	Auth         *Auth         `json:"auth"`
	Llm          *LLM          `json:"llm"`
	Conversation *Conversation `json:"conversation"`
	Log          *Log          `json:"log"`
}

type Auth struct {
	Enabled     bool   `json:"enabled"`
	JwtKey      string `json:"jwt_key"`
	DemoOwnerId int64  `json:"demo_owner_id"`
}

type Server struct {
	Http *HTTP `json:"http"`
}

type HTTP struct {
	Addr    string `json:"addr"`
	Timeout string `json:"timeout"`
}

type Data struct {
	Database *Database `json:"database"`
}

type Database struct {
	Driver string `json:"driver"`
	Source string `json:"source"`
}

type LLM struct {
	BaseUrl     string  `json:"base_url"`
	ApiKey      string  `json:"api_key"`
	Model       string  `json:"model"`
	Timeout     string  `json:"timeout"`
	MaxTokens   int32   `json:"max_tokens"`
	Temperature float32 `json:"temperature"`
	Qps         int32   `json:"qps"`
	Rpm         int32   `json:"rpm"`
	MaxRetries  int32   `json:"max_retries"`
	CacheSize   int32   `json:"cache_size"`
	CacheTtl    string  `json:"cache_ttl"`
}

type Conversation struct {
	Flow        string `json:"flow"`
	SessionTtl  string `json:"session_ttl"`
	MaxSessions int32  `json:"max_sessions"`
}

type Log struct {
	Level string `json:"level"`
	File  string `json:"file"`
}

// Duration 解析配置中的时长字符串，为空或非法时返回 def
func Duration(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
