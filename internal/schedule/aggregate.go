package schedule

import (
	"sort"
	"time"

	"github.com/teamshift-dev/workforce-manager/backend/internal/domain"
)

// closingTimeFor 取出班次所属单位在开始当天的打烊时间，没有设置时返回空字符串。
// 星期几按本地时间计算，跨单位查看时每个班次查自己单位的营业时间
func closingTimeFor(hoursByUnit map[int64]*domain.BusinessHours, s *domain.Shift) string {
	hours := hoursByUnit[s.UnitID]
	if hours == nil {
		return ""
	}
	return hours.Daily[int(s.StartTime.In(time.Local).Weekday())].ClosingTime
}

// UserTotals 计算网格中每个用户一周的总时长。
// 被隐藏的用户同样会被计算，隐藏只影响跨用户的合计。
func UserTotals(grid *WeeklyGrid, hoursByUnit map[int64]*domain.BusinessHours) map[int64]float64 {
	totals := make(map[int64]float64, len(grid.Cells))
	for userID, days := range grid.Cells {
		total := 0.0
		for _, cell := range days {
			for _, s := range cell {
				total += ShiftHours(s, closingTimeFor(hoursByUnit, s))
			}
		}
		totals[userID] = total
	}
	return totals
}

// DayTotals 计算每天所有用户的总时长，hidden 中的用户不计入
func DayTotals(grid *WeeklyGrid, hoursByUnit map[int64]*domain.BusinessHours, hidden map[int64]bool) map[string]float64 {
	totals := make(map[string]float64, 7)
	for _, key := range grid.DayKeys {
		totals[key] = 0
	}

	for userID, days := range grid.Cells {
		if hidden[userID] {
			continue
		}
		for key, cell := range days {
			for _, s := range cell {
				totals[key] += ShiftHours(s, closingTimeFor(hoursByUnit, s))
			}
		}
	}

	return totals
}

// GrandTotal 是所有天合计的总和
func GrandTotal(dayTotals map[string]float64) float64 {
	total := 0.0
	for _, t := range dayTotals {
		total += t
	}
	return total
}

// MonthlyPayrollEstimate 根据打卡记录估算某个月的工时和工资。
// 只统计开始时间落在 month 所在月份内的记录；
// 没有结束时间的记录视为未完成，不贡献任何工时；
// 对应单位没有录入时薪时工资按 0 计算，工时照常累计。
func MonthlyPayrollEstimate(entries []*domain.TimeEntry, wages map[int64]float64, month time.Time) MonthlyPayroll {
	year, m, _ := month.Date()

	result := MonthlyPayroll{}
	for _, e := range entries {
		start := e.StartTime.In(time.Local)
		if start.Year() != year || start.Month() != m {
			continue
		}
		if e.EndTime == nil {
			continue
		}

		hours := e.EndTime.Sub(e.StartTime).Hours()
		if hours <= 0 {
			continue
		}

		result.Hours += hours
		result.Amount += hours * wages[e.UnitID]
	}

	return result
}

// WeeklyPayrollEstimate 把已发布的班次按所在周（周一开始）分桶，
// 逐班次累计时长乘以对应单位的时薪。这一层不做打烊时间兜底，
// 没有下班时间的班次时长按 0 处理。返回结果按周起始日期降序排列。
func WeeklyPayrollEstimate(shifts []*domain.Shift, wages map[int64]float64) []PayrollBucket {
	bucketMap := make(map[string]*PayrollBucket)

	for _, s := range shifts {
		if s.Status != domain.ShiftStatusPublished {
			continue
		}

		hours := ShiftHours(s, "")
		if hours == 0 {
			continue
		}

		key := WeekStart(s.StartTime).Format(dateLayout)
		bucket, exists := bucketMap[key]
		if !exists {
			bucket = &PayrollBucket{WeekStart: key}
			bucketMap[key] = bucket
		}

		bucket.Hours += hours
		bucket.Amount += hours * wages[s.UnitID]
	}

	buckets := make([]PayrollBucket, 0, len(bucketMap))
	for _, bucket := range bucketMap {
		buckets = append(buckets, *bucket)
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].WeekStart > buckets[j].WeekStart
	})

	return buckets
}
