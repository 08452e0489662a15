package handler

import "strings"

// compileTemplate 把模板中的 {{key}} 占位符替换成 payload 中对应的值。
// 没有对应值的占位符原样保留，方便管理员在测试时发现拼写错误。
func compileTemplate(template string, payload map[string]string) string {
	var sb strings.Builder
	sb.Grow(len(template))

	for {
		start := strings.Index(template, "{{")
		if start == -1 {
			sb.WriteString(template)
			break
		}
		end := strings.Index(template[start:], "}}")
		if end == -1 {
			sb.WriteString(template)
			break
		}
		end += start

		sb.WriteString(template[:start])

		key := strings.TrimSpace(template[start+2 : end])
		if value, exists := payload[key]; exists {
			sb.WriteString(value)
		} else {
			sb.WriteString(template[start : end+2])
		}

		template = template[end+2:]
	}

	return sb.String()
}
