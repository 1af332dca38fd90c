package util

import (
	"strconv"
	"strings"
)

// CompactStrings 去掉首尾空白并丢弃空字符串
func CompactStrings(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ParseIntDefault 解析失败时返回默认值
func ParseIntDefault(s string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return v
}

func BoolPtr(b bool) *bool {
	return &b
}
