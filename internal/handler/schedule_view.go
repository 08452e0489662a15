package handler

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/teamshift-dev/workforce-manager/backend/internal/domain"
	"github.com/teamshift-dev/workforce-manager/backend/internal/schedule"
)

// parseUnitIDs 解析逗号分隔的单位 ID 列表
func parseUnitIDs(param string) ([]int64, error) {
	parts := strings.Split(param, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// unitKey 把单位 ID 列表规范化成显示设置的键，
// 顺序不同的同一组单位必须映射到同一个键
func unitKey(unitIDs []int64) string {
	sorted := slices.Clone(unitIDs)
	slices.Sort(sorted)

	parts := make([]string, 0, len(sorted))
	for _, id := range sorted {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, ",")
}

func (h *Handler) GetWeeklySchedule(w http.ResponseWriter, r *http.Request) {
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

	// 不传 date 时默认查看本周
	ref := time.Now()
	if dateParam := r.URL.Query().Get("date"); dateParam != "" {
		parsed, err := time.ParseInLocation("2006-01-02", dateParam, time.Local)
		if err != nil {
			h.errorResponse(w, r, "日期格式错误，应为 YYYY-MM-DD")
			return
		}
		ref = parsed
	}

	mode := domain.ShiftStatusPublished
	switch r.URL.Query().Get("mode") {
	case "", "published":
	case "draft":
		// 草稿只有排班相关角色能查看
		role := domain.Role(r.Context().Value(RoleCtxKey).(string))
		if role != domain.RoleScheduler && role != domain.RoleAdmin {
			h.forbidden(w, r, "权限不足")
			return
		}
		mode = domain.ShiftStatusDraft
	default:
		h.errorResponse(w, r, "查看模式无效")
		return
	}

	// 花名册取所选单位的全部在职成员
	roster, err := h.repository.GetUsersByUnitIDs(unitIDs)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	settings, err := h.repository.GetDisplaySettings(unitKey(unitIDs))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	ordered := schedule.ApplyDisplayOrder(roster, settings.OrderedUserIDs)
	groups := schedule.GroupByPosition(ordered)
	hidden := schedule.HiddenSet(settings.HiddenUserIDs)

	rosterIDs := make([]int64, 0, len(ordered))
	for _, u := range ordered {
		rosterIDs = append(rosterIDs, u.ID)
	}

	weekStart := schedule.WeekStart(ref)
	shifts, err := h.repository.GetShiftsByUnitIDs(unitIDs, weekStart, weekStart.AddDate(0, 0, 7))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	grid := schedule.BuildWeeklyGrid(shifts, rosterIDs, ref, mode)

	// 打烊时间的兜底按单位取各自的营业时间
	hoursByUnit := make(map[int64]*domain.BusinessHours, len(unitIDs))
	for _, unitID := range unitIDs {
		hours, err := h.repository.GetBusinessHours(unitID, weekStart)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		hoursByUnit[unitID] = hours
	}

	userTotals := schedule.UserTotals(grid, hoursByUnit)
	dayTotals := schedule.DayTotals(grid, hoursByUnit, hidden)

	h.successResponse(w, r, "获取周排班表成功", map[string]any{
		"weekStart":     grid.WeekStart.Format("2006-01-02"),
		"dayKeys":       grid.DayKeys,
		"groups":        groups,
		"hiddenUserIDs": settings.HiddenUserIDs,
		"cells":         grid.Cells,
		"userTotals":    userTotals,
		"dayTotals":     dayTotals,
		"grandTotal":    schedule.GrandTotal(dayTotals),
	})
}
