package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/teamshift-dev/workforce-manager/backend/internal/domain"
)

func (h *Handler) GetEmailConfig(w http.ResponseWriter, r *http.Request) {
	serviceID := chi.URLParam(r, "serviceID")

	config, err := h.repository.GetEmailConfig(serviceID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.notFound(w, r, "邮件模板不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	editable, err := h.repository.GetFeatureFlag(domain.FlagEmailConfigEditable)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取邮件模板成功", map[string]any{
		"config":   config,
		"editable": editable,
	})
}

func (h *Handler) UpdateEmailConfig(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Subject string `json:"subject" validate:"required"`
		Body    string `json:"body" validate:"required"`
		Enabled bool   `json:"enabled"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 模板编辑受全局开关控制
	editable, err := h.repository.GetFeatureFlag(domain.FlagEmailConfigEditable)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if !editable {
		h.forbidden(w, r, "邮件模板编辑功能已关闭")
		return
	}

	config := &domain.EmailConfig{
		ServiceID: chi.URLParam(r, "serviceID"),
		Subject:   req.Subject,
		Body:      req.Body,
		Enabled:   req.Enabled,
	}
	if err := h.repository.UpsertEmailConfig(config); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 审计失败只记录日志，不影响模板更新的结果
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	if err := h.repository.CreateAuditRecord(&domain.AuditRecord{
		ActorID: myInfo.ID,
		Action:  "update_email_config",
		Target:  config.ServiceID,
		Detail: map[string]any{
			"subject": config.Subject,
			"enabled": config.Enabled,
		},
	}); err != nil {
		slog.Error("写入审计记录失败", "action", "update_email_config", "target", config.ServiceID, "error", err)
	}

	h.successResponse(w, r, "更新邮件模板成功", config)
}

func (h *Handler) TestEmail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ServiceID string            `json:"serviceID"`
		To        string            `json:"to" validate:"omitempty,email"`
		Subject   string            `json:"subject" validate:"required"`
		Body      string            `json:"body" validate:"required"`
		Payload   map[string]string `json:"payload"`
		DryRun    bool              `json:"dryRun"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	compiledSubject := compileTemplate(req.Subject, req.Payload)
	compiledHTML := compileTemplate(req.Body, req.Payload)

	// 无论发送成功与否，编译结果都返回给管理员检查
	result := map[string]any{
		"serviceID": req.ServiceID,
		"subject":   compiledSubject,
		"html":      compiledHTML,
		"dryRun":    req.DryRun,
	}

	if req.DryRun {
		h.successResponse(w, r, "邮件模板编译成功", result)
		return
	}

	if req.To == "" {
		h.errorResponse(w, r, "实际发送测试邮件时必须指定收件人")
		return
	}

	if err := h.publishMail(domain.MailMessage{
		Type: "custom",
		To:   req.To,
		Data: domain.CustomMailData{
			Subject: compiledSubject,
			HTML:    compiledHTML,
		},
	}); err != nil {
		slog.Error("投递测试邮件失败", "to", req.To, "error", err)
		h.successResponse(w, r, "邮件模板编译成功，但投递失败", result)
		return
	}

	h.successResponse(w, r, "测试邮件已进入发送队列", result)
}
