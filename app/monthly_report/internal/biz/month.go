package biz

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var monthPattern = regexp.MustCompile(`^(\d{4})-(\d{2})$`)

// Month 报告所属月份
type Month struct {
	Year  int
	Month time.Month
}

// ParseMonth 解析 YYYY-MM
func ParseMonth(s string) (Month, error) {
	m := monthPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Month{}, fmt.Errorf("report month %q: want YYYY-MM", s)
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	if month < 1 || month > 12 {
		return Month{}, fmt.Errorf("report month %q: month out of range", s)
	}
	return Month{Year: year, Month: time.Month(month)}, nil
}

// DefaultMonth 15 日之前填写的是上个月的月报
func DefaultMonth(now time.Time) Month {
	if now.Day() < 15 {
		now = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -1, 0)
	}
	return Month{Year: now.Year(), Month: now.Month()}
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Label 例: 2024年3月
func (m Month) Label() string {
	return fmt.Sprintf("%d年%d月", m.Year, int(m.Month))
}

// Title 月报标题行
func (m Month) Title() string {
	return "# 月報：" + m.Label()
}

// NormalizeTitle 保证正文第一行是该月份的标题
//
// 首行是其他标题时替换掉，首行不是标题时在最前面插入标题。
func NormalizeTitle(text string, m Month) string {
	title := m.Title()
	text = strings.TrimLeft(text, " \t\r\n")
	if text == "" {
		return title + "\n"
	}
	first, rest, hasRest := strings.Cut(text, "\n")
	if strings.TrimSpace(first) == title {
		return text
	}
	if strings.HasPrefix(first, "#") {
		if !hasRest {
			return title
		}
		return title + "\n" + rest
	}
	return title + "\n\n" + text
}
