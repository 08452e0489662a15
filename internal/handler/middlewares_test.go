package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRateLimitKey(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		path       string
		want       string
	}{
		{
			name:       "去掉端口只保留 IP",
			remoteAddr: "203.0.113.7:51234",
			path:       "/api/auth/login",
			want:       "rate_limit_203.0.113.7_/api/auth/login",
		},
		{
			name:       "IPv6 地址去掉端口和中括号",
			remoteAddr: "[2001:db8::1]:8080",
			path:       "/api/auth/login",
			want:       "rate_limit_2001:db8::1_/api/auth/login",
		},
		{
			name:       "没有端口时原样使用",
			remoteAddr: "203.0.113.7",
			path:       "/api/auth/login",
			want:       "rate_limit_203.0.113.7_/api/auth/login",
		},
		{
			name:       "不同路径使用不同的窗口",
			remoteAddr: "203.0.113.7:51234",
			path:       "/api/auth/reset-password",
			want:       "rate_limit_203.0.113.7_/api/auth/reset-password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rateLimitKey(tt.remoteAddr, tt.path))
		})
	}
}

func TestRateLimitKeySamePerConnection(t *testing.T) {
	// 同一个客户端换端口重连，限流键必须保持不变
	first := rateLimitKey("203.0.113.7:51234", "/api/auth/login")
	second := rateLimitKey("203.0.113.7:62345", "/api/auth/login")
	assert.Equal(t, first, second)
}
