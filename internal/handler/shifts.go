package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/teamshift-dev/workforce-manager/backend/internal/domain"
	"github.com/teamshift-dev/workforce-manager/backend/internal/repository"
	"github.com/teamshift-dev/workforce-manager/backend/internal/schedule"
	"github.com/teamshift-dev/workforce-manager/backend/internal/utils"
)

func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID    int64      `json:"userID" validate:"required"`
		UnitID    int64      `json:"unitID" validate:"required"`
		StartTime time.Time  `json:"startTime"`
		EndTime   *time.Time `json:"endTime"`
		IsDayOff  bool       `json:"isDayOff"`
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

	if !req.IsDayOff && req.StartTime.IsZero() {
		h.errorResponse(w, r, "非休息日的班次必须有上班时间")
		return
	}

	if req.EndTime != nil {
		resolved, err := utils.ResolveShiftEnd(req.StartTime, *req.EndTime)
		if err != nil {
			h.badRequest(w, r, err)
			return
		}
		req.EndTime = &resolved
	}

	// 新建的班次一律是草稿，发布是单独的操作
	shift := &domain.Shift{
		UserID:    req.UserID,
		UnitID:    req.UnitID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		IsDayOff:  req.IsDayOff,
		Note:      req.Note,
		Status:    domain.ShiftStatusDraft,
	}

	if err := h.repository.CreateShift(shift); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "创建班次成功", shift)
}

type shiftPatch struct {
	StartTime *time.Time `json:"startTime"`
	EndTime   *time.Time `json:"endTime"`
	IsDayOff  *bool      `json:"isDayOff"`
	Note      *string    `json:"note"`
}

// applyShiftPatch 把部分更新合并进已有班次。
// 只要班次更新后仍有下班时间就重新做跨午夜处理，
// 只改上班时间也不能让已存的下班时间早于新的上班时间
func applyShiftPatch(shift *domain.Shift, patch *shiftPatch) error {
	if patch.StartTime != nil {
		shift.StartTime = *patch.StartTime
	}
	if patch.IsDayOff != nil {
		shift.IsDayOff = *patch.IsDayOff
	}
	if patch.Note != nil {
		shift.Note = *patch.Note
	}
	if patch.EndTime != nil {
		shift.EndTime = patch.EndTime
	}

	if shift.EndTime != nil {
		resolved, err := utils.ResolveShiftEnd(shift.StartTime, *shift.EndTime)
		if err != nil {
			return err
		}
		shift.EndTime = &resolved
	}

	return nil
}

func (h *Handler) UpdateShift(w http.ResponseWriter, r *http.Request) {
	var req shiftPatch

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	if err := applyShiftPatch(shift, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.UpdateShift(shift); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "更新班次成功", shift)
}

func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	if err := h.repository.DeleteShift(shift.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除班次成功", nil)
}

// GetPublishPreview 返回某周各单位待发布的草稿班次数量，供发布前确认
func (h *Handler) GetPublishPreview(w http.ResponseWriter, r *http.Request) {
	unitsParam := r.URL.Query().Get("units")
	if unitsParam == "" {
		h.errorResponse(w, r, "请指定要查看的单位")
		return
	}
	unitIDs, err := parseUnitIDs(unitsParam)
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

	weekStart := schedule.WeekStart(ref)
	shifts, err := h.repository.GetShiftsByUnitIDs(unitIDs, weekStart, weekStart.AddDate(0, 0, 7))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	summaries := schedule.DraftCounts(shifts, ref)
	if len(summaries) == 0 {
		h.errorResponse(w, r, "所选单位在这一周没有可发布的草稿班次")
		return
	}

	h.successResponse(w, r, "获取发布预览成功", map[string]any{
		"weekStart": weekStart.Format("2006-01-02"),
		"summaries": summaries,
	})
}

func (h *Handler) PublishShifts(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UnitIDs []int64 `json:"unitIDs" validate:"required,min=1"`
		Date    string  `json:"date" validate:"required"`
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
	shifts, err := h.repository.GetShiftsByUnitIDs(req.UnitIDs, weekStart, weekStart.AddDate(0, 0, 7))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	ids := schedule.DraftShiftIDs(shifts, ref, req.UnitIDs)
	if len(ids) == 0 {
		h.errorResponse(w, r, "所选单位在这一周没有可发布的草稿班次")
		return
	}

	// 整周整单位一起发布，事务保证不会出现发布了一半的状态
	if err := h.repository.PublishShifts(ids); err != nil {
		switch {
		case errors.Is(err, repository.ErrNoDraftShifts):
			h.errorResponse(w, r, "所选单位在这一周没有可发布的草稿班次")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "发布班次成功", map[string]any{
		"weekStart":      weekStart.Format("2006-01-02"),
		"publishedCount": len(ids),
	})
}
