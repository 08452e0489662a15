package handler

type ContextKey string

var (
	RoleCtxKey      ContextKey = "role"
	SubCtxKey       ContextKey = "sub"
	MyInfoCtx       ContextKey = "myInfo"
	UserInfoCtx     ContextKey = "userInfo"
	UnitCtx         ContextKey = "unit"
	ShiftCtx        ContextKey = "shift"
	TimeEntryCtx    ContextKey = "timeEntry"
	LeaveRequestCtx ContextKey = "leaveRequest"
)
