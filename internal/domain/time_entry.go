package domain

import "time"

// TimeEntry 是实际的打卡记录，与排班（Shift）相互独立，用于月度工资估算。
type TimeEntry struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"userID"`
	UnitID    int64      `json:"unitID"`
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime"`
	Note      string     `json:"note"`
	CreatedAt time.Time  `json:"createdAt"`
	Version   int32      `json:"-"`
}
