package schedule

import (
	"sort"
	"time"

	"github.com/teamshift-dev/workforce-manager/backend/internal/domain"
)

// DraftCounts 统计 ref 所在周内各单位待发布的草稿班次数量，
// 没有记录状态的班次视为草稿。结果按单位 ID 升序排列。
func DraftCounts(shifts []*domain.Shift, ref time.Time) []DraftSummary {
	weekStart := WeekStart(ref)
	weekEnd := weekStart.AddDate(0, 0, 7)

	counts := make(map[int64]int)
	for _, s := range shifts {
		if !isDraft(s) {
			continue
		}
		if s.StartTime.Before(weekStart) || !s.StartTime.Before(weekEnd) {
			continue
		}
		counts[s.UnitID]++
	}

	summaries := make([]DraftSummary, 0, len(counts))
	for unitID, count := range counts {
		summaries = append(summaries, DraftSummary{UnitID: unitID, Count: count})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].UnitID < summaries[j].UnitID
	})

	return summaries
}

// DraftShiftIDs 挑出所选单位在 ref 所在周内需要发布的草稿班次 ID。
// 未选中单位的草稿不受影响。
func DraftShiftIDs(shifts []*domain.Shift, ref time.Time, unitIDs []int64) []int64 {
	weekStart := WeekStart(ref)
	weekEnd := weekStart.AddDate(0, 0, 7)

	selected := make(map[int64]bool, len(unitIDs))
	for _, id := range unitIDs {
		selected[id] = true
	}

	ids := make([]int64, 0)
	for _, s := range shifts {
		if !isDraft(s) || !selected[s.UnitID] {
			continue
		}
		if s.StartTime.Before(weekStart) || !s.StartTime.Before(weekEnd) {
			continue
		}
		ids = append(ids, s.ID)
	}

	return ids
}
