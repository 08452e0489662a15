package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/teamshift-dev/workforce-manager/backend/internal/domain"
	"github.com/teamshift-dev/workforce-manager/backend/internal/utils"
)

func (h *Handler) ClockIn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UnitID    int64      `json:"unitID" validate:"required"`
		StartTime *time.Time `json:"startTime"`
		Note      string     `json:"note"`
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

	// 不传上班时间时以服务器当前时间为准
	startTime := time.Now()
	if req.StartTime != nil {
		startTime = *req.StartTime
	}

	entry := &domain.TimeEntry{
		UserID:    myInfo.ID,
		UnitID:    req.UnitID,
		StartTime: startTime,
		Note:      req.Note,
	}

	if err := h.repository.CreateTimeEntry(entry); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "上班打卡成功", entry)
}

func (h *Handler) ClockOut(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EndTime *time.Time `json:"endTime"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	entry := r.Context().Value(TimeEntryCtx).(*domain.TimeEntry)
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	// 打卡记录只允许本人操作
	if entry.UserID != myInfo.ID {
		h.forbidden(w, r, "只能操作自己的打卡记录")
		return
	}
	if entry.EndTime != nil {
		h.errorResponse(w, r, "该记录已经打过下班卡")
		return
	}

	endTime := time.Now()
	if req.EndTime != nil {
		endTime = *req.EndTime
	}

	resolved, err := utils.ResolveShiftEnd(entry.StartTime, endTime)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	entry.EndTime = &resolved
	if err := h.repository.FinishTimeEntry(entry); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "下班打卡失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "下班打卡成功", entry)
}

func (h *Handler) GetMyTimeEntries(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	monthStart := time.Date(time.Now().Year(), time.Now().Month(), 1, 0, 0, 0, 0, time.Local)
	if monthParam := r.URL.Query().Get("month"); monthParam != "" {
		parsed, err := time.ParseInLocation("2006-01", monthParam, time.Local)
		if err != nil {
			h.errorResponse(w, r, "月份格式错误，应为 YYYY-MM")
			return
		}
		monthStart = parsed
	}

	entries, err := h.repository.GetTimeEntriesByUserID(myInfo.ID, monthStart, monthStart.AddDate(0, 1, 0))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取打卡记录成功", entries)
}
