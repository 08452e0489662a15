package schedule

import (
	"sort"
	"time"

	"github.com/teamshift-dev/workforce-manager/backend/internal/domain"
)

// WeekStart 返回 t 所在周的周一零点（本地时间）。
// time.Weekday 中周日是 0，这里按 7 处理，保证一周从周一开始。
// 数据库驱动返回的时间可能带 UTC 或其它时区，先归一到本地再取日历字段。
func WeekStart(t time.Time) time.Time {
	t = t.In(time.Local)
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}

	year, month, day := t.Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	return midnight.AddDate(0, 0, 1-weekday)
}

func isDraft(s *domain.Shift) bool {
	// 老数据可能没有记录状态，过滤时视为草稿
	return s.Status == "" || s.Status == domain.ShiftStatusDraft
}

func matchesMode(s *domain.Shift, mode domain.ShiftStatus) bool {
	if mode == domain.ShiftStatusDraft {
		return isDraft(s)
	}
	return s.Status == mode
}

func emptyCells(dayKeys [7]string) map[string][]*domain.Shift {
	cells := make(map[string][]*domain.Shift, 7)
	for _, key := range dayKeys {
		cells[key] = make([]*domain.Shift, 0)
	}
	return cells
}

// BuildWeeklyGrid 把扁平的班次列表按用户和日期分桶成一周的网格。
// 只保留状态与 mode 相同、且开始时间落在 ref 所在周内的班次；
// 分桶的键是班次开始时间在本地时区的日期。
// rosterIDs 中的用户即使本周没有任何班次也会出现在网格里。
func BuildWeeklyGrid(shifts []*domain.Shift, rosterIDs []int64, ref time.Time, mode domain.ShiftStatus) *WeeklyGrid {
	weekStart := WeekStart(ref)
	weekEnd := weekStart.AddDate(0, 0, 7)

	grid := &WeeklyGrid{
		WeekStart: weekStart,
		Cells:     make(map[int64]map[string][]*domain.Shift),
	}
	for i := range grid.DayKeys {
		grid.DayKeys[i] = weekStart.AddDate(0, 0, i).Format(dateLayout)
	}

	for _, id := range rosterIDs {
		grid.Cells[id] = emptyCells(grid.DayKeys)
	}

	for _, s := range shifts {
		if !matchesMode(s, mode) {
			continue
		}
		if s.StartTime.Before(weekStart) || !s.StartTime.Before(weekEnd) {
			continue
		}

		if _, exists := grid.Cells[s.UserID]; !exists {
			grid.Cells[s.UserID] = emptyCells(grid.DayKeys)
		}

		key := s.StartTime.In(time.Local).Format(dateLayout)
		grid.Cells[s.UserID][key] = append(grid.Cells[s.UserID][key], s)
	}

	// 单元格内按开始时间升序排列，保证渲染顺序是确定的
	for _, days := range grid.Cells {
		for _, cell := range days {
			sort.SliceStable(cell, func(i, j int) bool {
				return cell[i].StartTime.Before(cell[j].StartTime)
			})
		}
	}

	return grid
}
