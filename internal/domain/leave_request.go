package domain

import "time"

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending  LeaveRequestStatus = "pending"
	LeaveRequestStatusApproved LeaveRequestStatus = "approved"
	LeaveRequestStatusRejected LeaveRequestStatus = "rejected"
)

type LeaveRequest struct {
	ID         int64              `json:"id"`
	UserID     int64              `json:"userID"`
	StartDate  time.Time          `json:"startDate"`
	EndDate    time.Time          `json:"endDate"`
	Reason     string             `json:"reason"`
	Status     LeaveRequestStatus `json:"status"`
	ReviewedBy *int64             `json:"reviewedBy"`
	CreatedAt  time.Time          `json:"createdAt"`
	Version    int32              `json:"-"`
}
