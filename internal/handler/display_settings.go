package handler

import (
	"net/http"
	"slices"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/teamshift-dev/workforce-manager/backend/internal/domain"
	"github.com/teamshift-dev/workforce-manager/backend/internal/schedule"
)

// loadDisplayState 读出某个单位组合的花名册和显示设置，
// 并把花名册按持久化的顺序排好、按职位分好组
func (h *Handler) loadDisplayState(unitIDs []int64) ([]*schedule.PositionGroup, *domain.DisplaySettings, error) {
	roster, err := h.repository.GetUsersByUnitIDs(unitIDs)
	if err != nil {
		return nil, nil, err
	}

	settings, err := h.repository.GetDisplaySettings(unitKey(unitIDs))
	if err != nil {
		return nil, nil, err
	}

	ordered := schedule.ApplyDisplayOrder(roster, settings.OrderedUserIDs)
	return schedule.GroupByPosition(ordered), settings, nil
}

func (h *Handler) GetDisplaySettings(w http.ResponseWriter, r *http.Request) {
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

	groups, settings, err := h.loadDisplayState(unitIDs)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取显示设置成功", map[string]any{
		"groups":        groups,
		"hiddenUserIDs": settings.HiddenUserIDs,
	})
}

func (h *Handler) UpdateDisplaySettings(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UnitIDs        []int64 `json:"unitIDs" validate:"required,min=1"`
		OrderedUserIDs []int64 `json:"orderedUserIDs" validate:"required"`
		HiddenUserIDs  []int64 `json:"hiddenUserIDs"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.HiddenUserIDs == nil {
		req.HiddenUserIDs = make([]int64, 0)
	}

	settings := &domain.DisplaySettings{
		UnitKey:        unitKey(req.UnitIDs),
		OrderedUserIDs: req.OrderedUserIDs,
		HiddenUserIDs:  req.HiddenUserIDs,
	}
	if err := h.repository.UpsertDisplaySettings(settings); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "更新显示设置成功", settings)
}

func (h *Handler) MoveDisplayUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UnitIDs   []int64 `json:"unitIDs" validate:"required,min=1"`
		UserID    int64   `json:"userID" validate:"required"`
		Direction string  `json:"direction" validate:"required,oneof=up down"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	groups, settings, err := h.loadDisplayState(req.UnitIDs)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 移动后的顺序立刻持久化，所有查看同一组单位的人都会看到新顺序
	settings.OrderedUserIDs = schedule.MoveUser(groups, req.UserID, req.Direction)
	if err := h.repository.UpsertDisplaySettings(settings); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "调整显示顺序成功", settings)
}

func (h *Handler) MoveDisplayGroup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UnitIDs   []int64 `json:"unitIDs" validate:"required,min=1"`
		Position  string  `json:"position" validate:"required"`
		Direction string  `json:"direction" validate:"required,oneof=up down"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	groups, settings, err := h.loadDisplayState(req.UnitIDs)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	settings.OrderedUserIDs = schedule.MoveGroup(groups, req.Position, req.Direction)
	if err := h.repository.UpsertDisplaySettings(settings); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "调整分组顺序成功", settings)
}

func (h *Handler) setUserHidden(w http.ResponseWriter, r *http.Request, hidden bool) {
	userIDParam := chi.URLParam(r, "userID")
	userID, err := strconv.ParseInt(userIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "用户ID无效")
		return
	}

	unitsParam := r.URL.Query().Get("units")
	if unitsParam == "" {
		h.errorResponse(w, r, "请指定单位")
		return
	}
	unitIDs, err := parseUnitIDs(unitsParam)
	if err != nil {
		h.errorResponse(w, r, "单位ID无效")
		return
	}

	settings, err := h.repository.GetDisplaySettings(unitKey(unitIDs))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 隐藏和恢复都不改变显示顺序，只改隐藏列表
	alreadyHidden := slices.Contains(settings.HiddenUserIDs, userID)
	switch {
	case hidden && !alreadyHidden:
		settings.HiddenUserIDs = append(settings.HiddenUserIDs, userID)
	case !hidden && alreadyHidden:
		settings.HiddenUserIDs = slices.DeleteFunc(settings.HiddenUserIDs, func(id int64) bool {
			return id == userID
		})
	}

	if err := h.repository.UpsertDisplaySettings(settings); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	message := "隐藏用户成功"
	if !hidden {
		message = "恢复显示用户成功"
	}
	h.successResponse(w, r, message, settings)
}

func (h *Handler) HideDisplayUser(w http.ResponseWriter, r *http.Request) {
	h.setUserHidden(w, r, true)
}

func (h *Handler) ShowDisplayUser(w http.ResponseWriter, r *http.Request) {
	h.setUserHidden(w, r, false)
}
