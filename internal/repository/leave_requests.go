package repository

import (
	"context"
	"time"

	"github.com/teamshift-dev/workforce-manager/backend/internal/domain"
)

func (r *Repository) CreateLeaveRequest(request *domain.LeaveRequest) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO leave_requests (user_id, start_date, end_date, reason, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`

	args := []any{request.UserID, request.StartDate, request.EndDate, request.Reason, domain.LeaveRequestStatusPending}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&request.ID, &request.CreatedAt, &request.Version); err != nil {
		return err
	}

	request.Status = domain.LeaveRequestStatusPending
	return nil
}

func (r *Repository) GetLeaveRequestByID(id int64) (*domain.LeaveRequest, error) {
	query := `
		SELECT user_id, start_date, end_date, reason, status, reviewed_by, created_at, version
		FROM leave_requests WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	request := &domain.LeaveRequest{
		ID: id,
	}

	dst := []any{&request.UserID, &request.StartDate, &request.EndDate, &request.Reason, &request.Status, &request.ReviewedBy, &request.CreatedAt, &request.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return request, nil
}

func (r *Repository) GetLeaveRequestsByUserID(userID int64) ([]*domain.LeaveRequest, error) {
	query := `
		SELECT id, user_id, start_date, end_date, reason, status, reviewed_by, created_at, version
		FROM leave_requests
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]*domain.LeaveRequest, 0)
	for rows.Next() {
		request := &domain.LeaveRequest{}
		dst := []any{&request.ID, &request.UserID, &request.StartDate, &request.EndDate, &request.Reason, &request.Status, &request.ReviewedBy, &request.CreatedAt, &request.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}

func (r *Repository) GetAllLeaveRequests(status domain.LeaveRequestStatus) ([]*domain.LeaveRequest, error) {
	query := `
		SELECT id, user_id, start_date, end_date, reason, status, reviewed_by, created_at, version
		FROM leave_requests
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC, id DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]*domain.LeaveRequest, 0)
	for rows.Next() {
		request := &domain.LeaveRequest{}
		dst := []any{&request.ID, &request.UserID, &request.StartDate, &request.EndDate, &request.Reason, &request.Status, &request.ReviewedBy, &request.CreatedAt, &request.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}

// ReviewLeaveRequest 审批请假申请，只有待审批状态的申请才能被审批
func (r *Repository) ReviewLeaveRequest(request *domain.LeaveRequest) error {
	query := `
		UPDATE leave_requests
		SET
			status = $1,
			reviewed_by = $2,
			version = version + 1
		WHERE id = $3 AND version = $4 AND status = $5
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{request.Status, request.ReviewedBy, request.ID, request.Version, domain.LeaveRequestStatusPending}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&request.Version); err != nil {
		return err
	}

	return nil
}
