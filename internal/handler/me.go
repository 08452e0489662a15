package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/teamshift-dev/workforce-manager/backend/internal/domain"
	"github.com/teamshift-dev/workforce-manager/backend/internal/schedule"
	"github.com/teamshift-dev/workforce-manager/backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

func (h *Handler) GetMyInfo(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	h.successResponse(w, r, "获取个人信息成功", myInfo)
}

func (h *Handler) UpdateMyPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OldPassword string `json:"oldPassword" validate:"required"`
		NewPassword string `json:"newPassword" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	if err := bcrypt.CompareHashAndPassword([]byte(myInfo.PasswordHash), []byte(req.OldPassword)); err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			h.errorResponse(w, r, "旧密码错误")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	myInfo.PasswordHash = string(hashedPassword)
	if err := h.repository.UpdateUser(myInfo); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "修改密码失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "修改密码成功", nil)
}

func (h *Handler) RequireUpdateEmail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		NewEmail string `json:"newEmail" validate:"required,email"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 检查新邮箱是否已被使用
	isExists, err := h.repository.CheckEmailIfExists(req.NewEmail)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if isExists {
		h.errorResponse(w, r, "该邮箱已被使用")
		return
	}

	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	// 生成 OTP 并将 OTP 和新邮箱存到 redis
	otp := utils.GenerateRandomOTP()

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationExpiration)*time.Second)
	defer cancel()

	expiration := time.Duration(h.config.OTP.Expiration) * time.Second
	if err := h.redisClient.Set(ctx, fmt.Sprintf("otp_%s_update_email", myInfo.Username), otp, expiration).Err(); err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if err := h.redisClient.Set(ctx, fmt.Sprintf("new_email_%s", myInfo.Username), req.NewEmail, expiration).Err(); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 验证码发送到新邮箱，证明新邮箱归本人所有
	if err := h.publishMail(domain.MailMessage{
		Type: "change_email",
		To:   req.NewEmail,
		Data: domain.ChangeEmailMailData{
			FullName:   myInfo.FullName,
			OTP:        otp,
			Expiration: h.config.OTP.Expiration / 60,
		},
	}); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "修改邮箱所需验证码已发送到新邮箱", nil)
}

func (h *Handler) ConfirmUpdateEmail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OTP string `json:"otp" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationExpiration)*time.Second)
	defer cancel()

	otpKey := fmt.Sprintf("otp_%s_update_email", myInfo.Username)
	newEmailKey := fmt.Sprintf("new_email_%s", myInfo.Username)

	otp, err := h.redisClient.Get(ctx, otpKey).Result()
	if err != nil {
		h.errorResponse(w, r, "验证码错误")
		return
	}
	if otp != req.OTP {
		h.errorResponse(w, r, "验证码错误")
		return
	}

	newEmail, err := h.redisClient.Get(ctx, newEmailKey).Result()
	if err != nil {
		h.errorResponse(w, r, "修改邮箱失败，请重新发起")
		return
	}

	myInfo.Email = newEmail
	if err := h.repository.UpdateUser(myInfo); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "修改邮箱失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := h.redisClient.Del(ctx, otpKey, newEmailKey).Err(); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "修改邮箱成功", myInfo)
}

func (h *Handler) GetMyWageTable(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	table, err := h.repository.GetWageTable(myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取时薪表成功", table)
}

func (h *Handler) UpdateMyWageTable(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Wages map[int64]float64 `json:"wages" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := utils.ValidateWages(req.Wages); err != nil {
		h.badRequest(w, r, err)
		return
	}

	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	table := &domain.WageTable{
		UserID: myInfo.ID,
		Wages:  req.Wages,
	}
	if err := h.repository.UpsertWageTable(table); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "更新时薪表成功", table)
}

func (h *Handler) GetMyMonthlyPayroll(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	// 不传 month 时默认当月
	monthStart := time.Date(time.Now().Year(), time.Now().Month(), 1, 0, 0, 0, 0, time.Local)
	if monthParam := r.URL.Query().Get("month"); monthParam != "" {
		parsed, err := time.ParseInLocation("2006-01", monthParam, time.Local)
		if err != nil {
			h.errorResponse(w, r, "月份格式错误，应为 YYYY-MM")
			return
		}
		monthStart = parsed
	}
	nextMonth := monthStart.AddDate(0, 1, 0)

	entries, err := h.repository.GetTimeEntriesByUserID(myInfo.ID, monthStart, nextMonth)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	table, err := h.repository.GetWageTable(myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	payroll := schedule.MonthlyPayrollEstimate(entries, table.Wages, monthStart)

	h.successResponse(w, r, "获取月度工资估算成功", map[string]any{
		"month":   monthStart.Format("2006-01"),
		"payroll": payroll,
	})
}

func (h *Handler) GetMyWeeklyPayroll(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	shifts, err := h.repository.GetPublishedShiftsByUserID(myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	table, err := h.repository.GetWageTable(myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	buckets := schedule.WeeklyPayrollEstimate(shifts, table.Wages)

	h.successResponse(w, r, "获取周工资估算成功", buckets)
}
