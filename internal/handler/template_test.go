package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompileTemplate(t *testing.T) {
	payload := map[string]string{
		"name":  "张三",
		"code":  "123456",
		"empty": "",
	}

	tests := []struct {
		name     string
		template string
		want     string
	}{
		{"无占位符", "你好，世界", "你好，世界"},
		{"单个占位符", "你好，{{name}}", "你好，张三"},
		{"多个占位符", "{{name}} 的验证码是 {{code}}", "张三 的验证码是 123456"},
		{"占位符带空格", "你好，{{ name }}", "你好，张三"},
		{"未知占位符原样保留", "你好，{{nickname}}", "你好，{{nickname}}"},
		{"空值占位符", "前{{empty}}后", "前后"},
		{"未闭合的占位符", "你好，{{name", "你好，{{name"},
		{"重复占位符", "{{code}}{{code}}", "123456123456"},
		{"空模板", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, compileTemplate(tt.template, payload))
		})
	}
}
