package engine

import "strings"

// Normalize 规范化自由文本标识（活动名称、区域标签）
// 只做小写和去首尾空白，供包含式比较使用
// 不做词干化和本地化处理，这是已知限制而非缺陷
func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// ResolveZone 解析区域标签，剥离项目编码前缀得到可比较的区域键
// 例如 rawZone="P5008-Zone A", projectCode="P5008" -> "zone a"
// 兼容 "P5008-Zone A"、"P5008 Zone A"、"P5008 - Zone A" 三种写法
// 空区域解析为空串，表示"未指定区域"
func ResolveZone(rawZone, projectCode string) string {
	zone := Normalize(rawZone)
	if zone == "" {
		return ""
	}

	code := Normalize(projectCode)
	if code == "" || !strings.HasPrefix(zone, code) {
		return zone
	}

	rest := zone[len(code):]
	if rest == "" {
		return ""
	}
	// 前缀后面必须紧跟连字符或空格，否则认为只是编码相似的普通文本
	if rest[0] != '-' && rest[0] != ' ' {
		return zone
	}

	return strings.TrimLeft(rest, "- ")
}
