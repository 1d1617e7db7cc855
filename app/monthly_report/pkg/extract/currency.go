package extract

import (
	"regexp"
	"strconv"
	"strings"
)

const totalKeyword = "合計"

var (
	// 「合計」后紧跟的金额，可带「万」
	totalPattern = regexp.MustCompile(totalKeyword + `[\s　]*[:：]?[\s　]*(` + digits + `+(?:[,，]` + digits + `+)*(?:\.` + digits + `+)?)[\s　]*(万)?`)
	// 「<数字>万円」
	manYenPattern = regexp.MustCompile(`(` + digits + `+(?:\.` + digits + `+)?)[\s　]*万円`)
)

// Yen 从收入描述中提取金额（单位：円）
//
// 文本含「合計」时只取其后的金额；否则取第一个「<数字>万円」；
// 都没有命中时退回 Extract。多个金额不会相加。
func Yen(text string, def float64) float64 {
	if strings.Contains(text, totalKeyword) {
		if m := totalPattern.FindStringSubmatch(text); m != nil {
			v, err := strconv.ParseFloat(strings.ReplaceAll(normalize(m[1]), ",", ""), 64)
			if err == nil {
				if m[2] != "" {
					v *= 10000
				}
				return v
			}
		}
	} else if m := manYenPattern.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(normalize(m[1]), 64); err == nil {
			return v * 10000
		}
	}
	return ExtractFloat(text, def)
}
