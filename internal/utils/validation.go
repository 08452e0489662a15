package utils

import (
	"fmt"
	"time"

	"github.com/teamshift-dev/workforce-manager/backend/internal/domain"
)

// ValidateTimeOfDay 检查 HH:MM 格式的时间字符串
func ValidateTimeOfDay(value string) error {
	if _, err := time.Parse("15:04", value); err != nil {
		return fmt.Errorf("时间 %s 的格式错误，应为 HH:MM", value)
	}
	return nil
}

// ValidateBusinessHours 检查一周七天的营业时间设置
func ValidateBusinessHours(hours *domain.BusinessHours) error {
	for day, daily := range hours.Daily {
		if err := ValidateTimeOfDay(daily.OpeningTime); err != nil {
			return fmt.Errorf("星期 %d 的开门时间格式错误", day)
		}
		if err := ValidateTimeOfDay(daily.ClosingTime); err != nil {
			return fmt.Errorf("星期 %d 的打烊时间格式错误", day)
		}
	}
	return nil
}

// ResolveShiftEnd 处理录入时的下班时间：
// 下班时间等于上班时间视为非法；早于上班时间说明跨了午夜，顺延到第二天。
// 经过这里之后，下游的时长计算看到的下班时间一定晚于上班时间。
func ResolveShiftEnd(start time.Time, end time.Time) (time.Time, error) {
	if end.Equal(start) {
		return time.Time{}, fmt.Errorf("下班时间不能等于上班时间")
	}
	if end.Before(start) {
		end = end.AddDate(0, 0, 1)
	}
	if !end.After(start) {
		return time.Time{}, fmt.Errorf("下班时间必须晚于上班时间")
	}
	return end, nil
}

// ValidateWages 检查时薪表中的数值，时薪不允许为负数
func ValidateWages(wages map[int64]float64) error {
	for unitID, wage := range wages {
		if wage < 0 {
			return fmt.Errorf("单位 %d 的时薪不能为负数", unitID)
		}
	}
	return nil
}

// ValidateLeaveRequestDates 检查请假申请的日期区间
func ValidateLeaveRequestDates(request *domain.LeaveRequest) error {
	if request.EndDate.Before(request.StartDate) {
		return fmt.Errorf("请假结束日期不能早于开始日期")
	}
	return nil
}
