package schedule

import (
	"time"

	"github.com/teamshift-dev/workforce-manager/backend/internal/domain"
)

// ShiftHours 计算单个班次的工作时长（小时）。
// closingTime 是 HH:MM 格式的打烊时间，用于推算没有填下班时间的班次；
// 推算出的下班时间如果早于上班时间，说明打烊在第二天凌晨，往后顺延一天。
// 所有缺失或非法的输入都按 0 处理，绝不返回负数，也绝不 panic。
func ShiftHours(s *domain.Shift, closingTime string) float64 {
	if s == nil || s.IsDayOff || s.StartTime.IsZero() {
		return 0
	}

	// 打烊时间是本地时间的钟点，推算前先把开始时间归一到本地
	start := s.StartTime.In(time.Local)

	end := s.EndTime
	if end == nil {
		if closingTime == "" {
			return 0
		}
		closing, err := time.Parse("15:04", closingTime)
		if err != nil {
			return 0
		}
		year, month, day := start.Date()
		implied := time.Date(year, month, day, closing.Hour(), closing.Minute(), 0, 0, time.Local)
		if implied.Before(start) {
			implied = implied.AddDate(0, 0, 1)
		}
		end = &implied
	}

	hours := end.Sub(start).Hours()
	if hours <= 0 {
		return 0
	}
	return hours
}
