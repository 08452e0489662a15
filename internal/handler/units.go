package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/teamshift-dev/workforce-manager/backend/internal/domain"
)

func (h *Handler) GetAllUnits(w http.ResponseWriter, r *http.Request) {
	units, err := h.repository.GetAllUnits()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取单位列表成功", units)
}

func (h *Handler) CreateUnit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	unit := &domain.Unit{
		Name: req.Name,
	}

	if err := h.repository.CreateUnit(unit); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "units_name_key":
			h.badRequest(w, r, errors.New("单位名称已存在"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "创建单位成功", unit)
}

func (h *Handler) GetUnit(w http.ResponseWriter, r *http.Request) {
	unit := r.Context().Value(UnitCtx).(*domain.Unit)
	h.successResponse(w, r, "获取单位信息成功", unit)
}

func (h *Handler) UpdateUnit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name *string `json:"name"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	unit := r.Context().Value(UnitCtx).(*domain.Unit)

	if req.Name != nil {
		unit.Name = *req.Name
	}

	if err := h.repository.UpdateUnit(unit); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "units_name_key":
			h.badRequest(w, r, errors.New("单位名称已存在"))
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "更新单位信息失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新单位信息成功", unit)
}

func (h *Handler) DeleteUnit(w http.ResponseWriter, r *http.Request) {
	unit := r.Context().Value(UnitCtx).(*domain.Unit)

	if err := h.repository.DeleteUnit(unit.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除单位成功", nil)
}

func (h *Handler) AddUnitMember(w http.ResponseWriter, r *http.Request) {
	unit := r.Context().Value(UnitCtx).(*domain.Unit)

	userIDParam := chi.URLParam(r, "userID")
	userID, err := strconv.ParseInt(userIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "用户ID无效")
		return
	}

	if _, err := h.repository.GetUserByID(userID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.notFound(w, r, "用户不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := h.repository.AddUnitMember(unit.ID, userID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "添加单位成员成功", nil)
}

func (h *Handler) RemoveUnitMember(w http.ResponseWriter, r *http.Request) {
	unit := r.Context().Value(UnitCtx).(*domain.Unit)

	userIDParam := chi.URLParam(r, "userID")
	userID, err := strconv.ParseInt(userIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "用户ID无效")
		return
	}

	if err := h.repository.RemoveUnitMember(unit.ID, userID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "移除单位成员成功", nil)
}
