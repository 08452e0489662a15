package domain

type EmailConfig struct {
	ID        int64  `json:"id"`
	ServiceID string `json:"serviceID"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	Enabled   bool   `json:"enabled"`
	Version   int32  `json:"-"`
}

type FeatureFlag struct {
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
}

// FlagEmailConfigEditable 控制管理员能否编辑邮件模板
const FlagEmailConfigEditable = "email_config_editable"
