package seed

import (
	"log/slog"

	"github.com/teamshift-dev/workforce-manager/backend/internal/domain"
	"github.com/teamshift-dev/workforce-manager/backend/internal/repository"
)

var defaultEmailConfigs = []*domain.EmailConfig{
	{
		ServiceID: "create_user",
		Subject:   "欢迎加入，{{fullName}}",
		Body:      "<p>{{fullName}} 你好，你的账号 {{username}} 已经创建，初始密码为 {{password}}，请尽快登录并修改密码。</p>",
		Enabled:   true,
	},
	{
		ServiceID: "reset_password",
		Subject:   "重置密码验证码",
		Body:      "<p>{{fullName}} 你好，你的重置密码验证码是 {{otp}}，{{expiration}} 分钟内有效。</p>",
		Enabled:   true,
	},
	{
		ServiceID: "change_email",
		Subject:   "修改邮箱验证码",
		Body:      "<p>{{fullName}} 你好，你的修改邮箱验证码是 {{otp}}，{{expiration}} 分钟内有效。</p>",
		Enabled:   true,
	},
	{
		ServiceID: "custom",
		Subject:   "",
		Body:      "",
		Enabled:   true,
	},
}

// SeedEmailConfigs 写入默认的邮件模板并打开模板编辑开关。
// 重复执行是安全的，已有模板会被默认值覆盖。
func SeedEmailConfigs(repo *repository.Repository) {
	cnt := 0
	for _, config := range defaultEmailConfigs {
		if err := repo.UpsertEmailConfig(config); err != nil {
			slog.Error("插入邮件模板失败", "serviceID", config.ServiceID, "error", err)
			continue
		}
		cnt++
	}

	if err := repo.SetFeatureFlag(domain.FlagEmailConfigEditable, true); err != nil {
		slog.Error("设置功能开关失败", "name", domain.FlagEmailConfigEditable, "error", err)
		return
	}

	slog.Info("插入默认邮件模板成功", "count", cnt)
}
