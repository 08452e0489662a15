package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/teamshift-dev/workforce-manager/backend/internal/domain"
	"github.com/teamshift-dev/workforce-manager/backend/internal/schedule"
	"github.com/teamshift-dev/workforce-manager/backend/internal/utils"
)

func (h *Handler) GetBusinessHours(w http.ResponseWriter, r *http.Request) {
	unitParam := r.URL.Query().Get("unit")
	unitID, err := strconv.ParseInt(unitParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "单位ID无效")
		return
	}

	ref := time.Now()
	if dateParam := r.URL.Query().Get("date"); dateParam != "" {
		parsed, err := time.ParseInLocation("2006-01-02", dateParam, time.Local)
		if err != nil {
			h.errorResponse(w, r, "日期格式错误，应为 YYYY-MM-DD")
			return
		}
		ref = parsed
	}

	hours, err := h.repository.GetBusinessHours(unitID, schedule.WeekStart(ref))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取营业时间成功", hours)
}

func (h *Handler) UpdateBusinessHours(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UnitID int64                `json:"unitID" validate:"required"`
		Date   string               `json:"date" validate:"required"`
		Daily  [7]domain.DailyHours `json:"daily" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	ref, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
	if err != nil {
		h.errorResponse(w, r, "日期格式错误，应为 YYYY-MM-DD")
		return
	}

	weekStart := schedule.WeekStart(ref)

	hours := &domain.BusinessHours{
		UnitID:    req.UnitID,
		WeekStart: weekStart,
		Daily:     req.Daily,
	}
	if err := utils.ValidateBusinessHours(hours); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 确保这一周的记录已经存在，第一次编辑时会懒创建默认值
	if _, err := h.repository.GetBusinessHours(req.UnitID, weekStart); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.repository.UpdateBusinessHours(hours); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "更新营业时间失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新营业时间成功", hours)
}
