package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/teamshift-dev/workforce-manager/backend/internal/domain"
	"github.com/teamshift-dev/workforce-manager/backend/internal/utils"
)

func (h *Handler) CreateLeaveRequest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StartDate string `json:"startDate" validate:"required"`
		EndDate   string `json:"endDate" validate:"required"`
		Reason    string `json:"reason" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	startDate, err := time.ParseInLocation("2006-01-02", req.StartDate, time.Local)
	if err != nil {
		h.errorResponse(w, r, "开始日期格式错误，应为 YYYY-MM-DD")
		return
	}
	endDate, err := time.ParseInLocation("2006-01-02", req.EndDate, time.Local)
	if err != nil {
		h.errorResponse(w, r, "结束日期格式错误，应为 YYYY-MM-DD")
		return
	}

	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	request := &domain.LeaveRequest{
		UserID:    myInfo.ID,
		StartDate: startDate,
		EndDate:   endDate,
		Reason:    req.Reason,
	}
	if err := utils.ValidateLeaveRequestDates(request); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.CreateLeaveRequest(request); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "提交请假申请成功", request)
}

func (h *Handler) GetMyLeaveRequests(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	requests, err := h.repository.GetLeaveRequestsByUserID(myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取请假申请成功", requests)
}

func (h *Handler) GetAllLeaveRequests(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	switch status {
	case "", "pending", "approved", "rejected":
	default:
		h.errorResponse(w, r, "审批状态无效")
		return
	}

	requests, err := h.repository.GetAllLeaveRequests(domain.LeaveRequestStatus(status))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取请假申请列表成功", requests)
}

func (h *Handler) ReviewLeaveRequest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Decision string `json:"decision" validate:"required,oneof=approve reject"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	request := r.Context().Value(LeaveRequestCtx).(*domain.LeaveRequest)
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	if request.Status != domain.LeaveRequestStatusPending {
		h.errorResponse(w, r, "该申请已经审批过了")
		return
	}

	if req.Decision == "approve" {
		request.Status = domain.LeaveRequestStatusApproved
	} else {
		request.Status = domain.LeaveRequestStatusRejected
	}
	request.ReviewedBy = &myInfo.ID

	if err := h.repository.ReviewLeaveRequest(request); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// 版本或状态不匹配，说明另一个管理员先审批了
			h.errorResponse(w, r, "该申请已被其他管理员审批，请刷新后查看")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "审批请假申请成功", request)
}
