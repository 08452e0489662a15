package domain

import "time"

type ShiftStatus string

const (
	ShiftStatusDraft     ShiftStatus = "draft"
	ShiftStatusPublished ShiftStatus = "published"
)

// Shift 表示某个用户在某个单位的一段排班。
// EndTime 为空表示下班时间未定，计算时长时需要用当天的打烊时间来推算。
type Shift struct {
	ID        int64       `json:"id"`
	UserID    int64       `json:"userID"`
	UnitID    int64       `json:"unitID"`
	StartTime time.Time   `json:"startTime"`
	EndTime   *time.Time  `json:"endTime"`
	IsDayOff  bool        `json:"isDayOff"`
	Note      string      `json:"note"`
	Status    ShiftStatus `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
	Version   int32       `json:"-"`
}
