package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teamshift-dev/workforce-manager/backend/internal/domain"
)

func publishFixture(t *testing.T) []*domain.Shift {
	t.Helper()

	s1 := makeShift(t, "2024-01-02T09:00", "2024-01-02T17:00")
	s1.ID = 1
	s1.UnitID = 1

	s2 := makeShift(t, "2024-01-03T09:00", "2024-01-03T17:00")
	s2.ID = 2
	s2.UnitID = 1
	s2.Status = "" // 没有记录状态的班次按草稿处理

	s3 := makeShift(t, "2024-01-04T09:00", "2024-01-04T17:00")
	s3.ID = 3
	s3.UnitID = 2

	s4 := makeShift(t, "2024-01-05T09:00", "2024-01-05T17:00")
	s4.ID = 4
	s4.UnitID = 2
	s4.Status = domain.ShiftStatusPublished // 已发布的不再计入

	s5 := makeShift(t, "2024-01-10T09:00", "2024-01-10T17:00")
	s5.ID = 5
	s5.UnitID = 1 // 下一周的草稿不计入

	return []*domain.Shift{s1, s2, s3, s4, s5}
}

func TestDraftCounts(t *testing.T) {
	counts := DraftCounts(publishFixture(t), mustTime(t, "2024-01-03T00:00"))

	require.Len(t, counts, 2)
	assert.Equal(t, DraftSummary{UnitID: 1, Count: 2}, counts[0])
	assert.Equal(t, DraftSummary{UnitID: 2, Count: 1}, counts[1])
}

func TestDraftCountsEmptyWeek(t *testing.T) {
	counts := DraftCounts(publishFixture(t), mustTime(t, "2024-02-01T00:00"))
	assert.Empty(t, counts)
}

func TestDraftShiftIDsSubset(t *testing.T) {
	shifts := publishFixture(t)

	// 只选择单位 1，单位 2 的草稿不受影响
	ids := DraftShiftIDs(shifts, mustTime(t, "2024-01-03T00:00"), []int64{1})
	assert.ElementsMatch(t, []int64{1, 2}, ids)

	ids = DraftShiftIDs(shifts, mustTime(t, "2024-01-03T00:00"), []int64{1, 2})
	assert.ElementsMatch(t, []int64{1, 2, 3}, ids)

	ids = DraftShiftIDs(shifts, mustTime(t, "2024-01-03T00:00"), nil)
	assert.Empty(t, ids)
}
