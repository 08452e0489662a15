package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teamshift-dev/workforce-manager/backend/internal/domain"
)

func unitHours(weekStart time.Time, unitID int64, closingTime string) *domain.BusinessHours {
	hours := &domain.BusinessHours{UnitID: unitID, WeekStart: weekStart}
	for i := range hours.Daily {
		hours.Daily[i] = domain.DailyHours{OpeningTime: "09:00", ClosingTime: closingTime}
	}
	return hours
}

func weekFixture(t *testing.T) (*WeeklyGrid, map[int64]*domain.BusinessHours) {
	t.Helper()

	s1 := makeShift(t, "2024-01-01T08:00", "2024-01-01T16:00") // 用户 1，8 小时
	s1.ID = 1
	s2 := makeShift(t, "2024-01-02T22:00", "") // 用户 1，打烊 02:00，4 小时
	s2.ID = 2
	s3 := makeShift(t, "2024-01-01T09:00", "2024-01-01T15:00") // 用户 2，6 小时
	s3.ID = 3
	s3.UserID = 2

	grid := BuildWeeklyGrid([]*domain.Shift{s1, s2, s3}, nil, mustTime(t, "2024-01-01T00:00"), domain.ShiftStatusDraft)

	hoursByUnit := map[int64]*domain.BusinessHours{
		1: unitHours(grid.WeekStart, 1, "02:00"),
	}

	return grid, hoursByUnit
}

func TestUserTotals(t *testing.T) {
	grid, hours := weekFixture(t)

	totals := UserTotals(grid, hours)
	assert.InDelta(t, 12, totals[1], 1e-9)
	assert.InDelta(t, 6, totals[2], 1e-9)
}

func TestUserTotalsPerUnitClosingTime(t *testing.T) {
	// 两个单位打烊时间不同，各自的未收尾班次要用自己单位的打烊时间兜底
	early := makeShift(t, "2024-01-01T20:00", "") // 单位 1 打烊 22:00，2 小时
	early.ID = 1
	late := makeShift(t, "2024-01-01T20:00", "") // 单位 2 打烊 02:00，6 小时
	late.ID = 2
	late.UserID = 2
	late.UnitID = 2

	grid := BuildWeeklyGrid([]*domain.Shift{early, late}, nil, mustTime(t, "2024-01-01T00:00"), domain.ShiftStatusDraft)

	hoursByUnit := map[int64]*domain.BusinessHours{
		1: unitHours(grid.WeekStart, 1, "22:00"),
		2: unitHours(grid.WeekStart, 2, "02:00"),
	}

	totals := UserTotals(grid, hoursByUnit)
	assert.InDelta(t, 2, totals[1], 1e-9)
	assert.InDelta(t, 6, totals[2], 1e-9)

	// 没有营业时间记录的单位不做兜底，时长按 0 处理
	orphan := UserTotals(grid, map[int64]*domain.BusinessHours{1: hoursByUnit[1]})
	assert.InDelta(t, 0, orphan[2], 1e-9)
}

func TestUserTotalsUTCStartTime(t *testing.T) {
	// 驱动返回的 UTC 时间和本地时间指向同一时刻，打烊兜底的结果必须一致
	local := makeShift(t, "2024-01-02T22:00", "")
	local.ID = 1
	utc := makeShift(t, "2024-01-02T22:00", "")
	utc.ID = 2
	utc.UserID = 2
	utc.StartTime = utc.StartTime.UTC()

	grid := BuildWeeklyGrid([]*domain.Shift{local, utc}, nil, mustTime(t, "2024-01-01T00:00"), domain.ShiftStatusDraft)
	hoursByUnit := map[int64]*domain.BusinessHours{1: unitHours(grid.WeekStart, 1, "02:00")}

	totals := UserTotals(grid, hoursByUnit)
	assert.InDelta(t, totals[1], totals[2], 1e-9)
	assert.InDelta(t, 4, totals[2], 1e-9)
}

func TestDayTotalsExcludeHidden(t *testing.T) {
	grid, hours := weekFixture(t)

	visible := DayTotals(grid, hours, nil)
	assert.InDelta(t, 14, visible["2024-01-01"], 1e-9)
	assert.InDelta(t, 4, visible["2024-01-02"], 1e-9)
	assert.InDelta(t, 18, GrandTotal(visible), 1e-9)

	// 隐藏用户 2 后，日合计和总合计不再包含该用户，但个人合计不受影响
	hidden := HiddenSet([]int64{2})
	filtered := DayTotals(grid, hours, hidden)
	assert.InDelta(t, 8, filtered["2024-01-01"], 1e-9)
	assert.InDelta(t, 12, GrandTotal(filtered), 1e-9)
	assert.InDelta(t, 6, UserTotals(grid, hours)[2], 1e-9)

	// 取消隐藏后恢复原来的数值
	restored := DayTotals(grid, hours, HiddenSet(nil))
	assert.Equal(t, visible, restored)
}

func TestMonthlyPayrollEstimate(t *testing.T) {
	end1 := mustTime(t, "2024-01-10T17:00")
	end2 := mustTime(t, "2024-01-15T18:00")
	end3 := mustTime(t, "2024-02-01T17:00")

	entries := []*domain.TimeEntry{
		{UserID: 1, UnitID: 1, StartTime: mustTime(t, "2024-01-10T09:00"), EndTime: &end1}, // 8 小时，时薪 50
		{UserID: 1, UnitID: 2, StartTime: mustTime(t, "2024-01-15T10:00"), EndTime: &end2}, // 8 小时，没有时薪
		{UserID: 1, UnitID: 1, StartTime: mustTime(t, "2024-01-20T09:00")},                 // 未完成，不计入
		{UserID: 1, UnitID: 1, StartTime: mustTime(t, "2024-02-01T09:00"), EndTime: &end3}, // 不在当月
	}
	wages := map[int64]float64{1: 50}

	result := MonthlyPayrollEstimate(entries, wages, mustTime(t, "2024-01-01T00:00"))

	// 没有时薪的单位工时照常累计，工资按 0 计算
	assert.InDelta(t, 16, result.Hours, 1e-9)
	assert.InDelta(t, 400, result.Amount, 1e-9)
}

func TestMonthlyPayrollEstimateEmpty(t *testing.T) {
	result := MonthlyPayrollEstimate(nil, nil, mustTime(t, "2024-01-01T00:00"))
	assert.Zero(t, result.Hours)
	assert.Zero(t, result.Amount)
}

func TestWeeklyPayrollEstimate(t *testing.T) {
	week1 := makeShift(t, "2024-01-02T09:00", "2024-01-02T17:00") // 第一周 8 小时
	week1.Status = domain.ShiftStatusPublished
	week1b := makeShift(t, "2024-01-03T09:00", "2024-01-03T13:00") // 第一周 4 小时
	week1b.Status = domain.ShiftStatusPublished
	week2 := makeShift(t, "2024-01-09T09:00", "2024-01-09T15:00") // 第二周 6 小时
	week2.Status = domain.ShiftStatusPublished
	draft := makeShift(t, "2024-01-09T09:00", "2024-01-09T18:00") // 草稿不计入
	open := makeShift(t, "2024-01-10T09:00", "")                  // 没有下班时间不做兜底
	open.Status = domain.ShiftStatusPublished

	shifts := []*domain.Shift{week1, week1b, week2, draft, open}
	wages := map[int64]float64{1: 100}

	buckets := WeeklyPayrollEstimate(shifts, wages)

	require.Len(t, buckets, 2)
	// 按周起始日期降序排列
	assert.Equal(t, "2024-01-08", buckets[0].WeekStart)
	assert.InDelta(t, 6, buckets[0].Hours, 1e-9)
	assert.InDelta(t, 600, buckets[0].Amount, 1e-9)
	assert.Equal(t, "2024-01-01", buckets[1].WeekStart)
	assert.InDelta(t, 12, buckets[1].Hours, 1e-9)
	assert.InDelta(t, 1200, buckets[1].Amount, 1e-9)
}
