package extract

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// 数字部分同时匹配半角与全角，只在命中的子串上做全角转换
const digits = `[0-9０-９]`

var (
	// 带「万/千/百」单位的数字，按从左到右第一个命中取值
	unitPattern = regexp.MustCompile(`(` + digits + `+(?:\.` + digits + `+)?)[\s　]*([万千百])`)
	// 普通数字，允许千分位逗号（半角/全角）及小数
	plainPattern = regexp.MustCompile(digits + `+(?:[,，]` + digits + `+)*(?:\.` + digits + `+)?`)
	// 连续整数，用于按位置拆分营业数据
	integerPattern = regexp.MustCompile(digits + `+`)
)

var multipliers = map[string]float64{
	"万": 10000,
	"千": 1000,
	"百": 100,
}

// Number 提取结果，记录值本身是整数还是小数
type Number struct {
	value      float64
	fractional bool
}

// Int 构造整数结果
func Int(v int64) Number {
	return Number{value: float64(v)}
}

// Float 构造小数结果
func Float(v float64) Number {
	return Number{value: v, fractional: true}
}

// IsFloat 是否为小数形式
func (n Number) IsFloat() bool { return n.fractional }

// Float64 以 float64 返回
func (n Number) Float64() float64 { return n.value }

// Int 以 int 返回（小数部分截断），超出 int 范围时为 0
func (n Number) Int() int { return n.IntOr(0) }

// IntOr 以 int 返回，超出 int 范围时返回 def
func (n Number) IntOr(def int) int {
	if !(n.value >= math.MinInt && n.value < -math.MinInt) {
		return def
	}
	return int(n.value)
}

func (n Number) String() string {
	if !n.fractional {
		return strconv.FormatInt(int64(n.value), 10)
	}
	return strconv.FormatFloat(n.value, 'f', -1, 64)
}

// Extract 从自然语言文本中提取数值
//
// 优先级：带单位的数字 > 普通数字 > def。
// 例: "160時間ぐらいです" -> 160，"およそ200万円です" -> 2000000
func Extract(text string, def Number) Number {
	if strings.TrimSpace(text) == "" {
		return def
	}

	if m := unitPattern.FindStringSubmatch(text); m != nil {
		base, err := strconv.ParseFloat(normalize(m[1]), 64)
		if err == nil {
			result := base * multipliers[m[2]]
			if result == math.Trunc(result) && math.Abs(result) < 1<<53 {
				return Int(int64(result))
			}
			return Float(result)
		}
	}

	if m := plainPattern.FindString(text); m != "" {
		s := strings.ReplaceAll(normalize(m), ",", "")
		if strings.Contains(s, ".") {
			if v, err := strconv.ParseFloat(s, 64); err == nil {
				return Float(v)
			}
			return def
		}
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			return Int(v)
		}
	}

	return def
}

// ExtractFloat 提取数值并以 float64 返回
func ExtractFloat(text string, def float64) float64 {
	return Extract(text, Float(def)).Float64()
}

// ExtractInt 提取数值并以 int 返回
func ExtractInt(text string, def int) int {
	return Extract(text, Int(int64(def))).IntOr(def)
}

// Integers 按出现顺序返回文本中所有整数
//
// 溢出的整数记为 0，保持后续数字的位置不变。
func Integers(text string) []int {
	var out []int
	for _, m := range integerPattern.FindAllString(text, -1) {
		v, err := strconv.Atoi(normalize(m))
		if err != nil {
			v = 0
		}
		out = append(out, v)
	}
	return out
}

// normalize 将全角数字与全角逗号转为半角
func normalize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= '０' && r <= '９':
			return '0' + (r - '０')
		case r == '，':
			return ','
		}
		return r
	}, s)
}
