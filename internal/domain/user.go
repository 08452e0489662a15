package domain

import (
	"time"
)

type Role string

const (
	RoleStaff     Role = "普通员工"
	RoleScheduler Role = "排班负责人"
	RoleAdmin     Role = "管理员"
)

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	Position     string    `json:"position"`
	UnitIDs      []int64   `json:"unitIDs"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	Version      int32     `json:"-"`
}
