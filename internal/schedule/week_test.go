package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teamshift-dev/workforce-manager/backend/internal/domain"
)

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name string
		ref  string
		want string
	}{
		{name: "周一", ref: "2024-01-01T00:00", want: "2024-01-01"},
		{name: "周三", ref: "2024-01-03T15:30", want: "2024-01-01"},
		{name: "周日按一周的最后一天处理", ref: "2024-01-07T23:59", want: "2024-01-01"},
		{name: "下一周的周一", ref: "2024-01-08T00:00", want: "2024-01-08"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeekStart(mustTime(t, tt.ref))
			assert.Equal(t, tt.want, got.Format(dateLayout))
			assert.Equal(t, 0, got.Hour())
			assert.Equal(t, 0, got.Minute())
		})
	}
}

func TestBuildWeeklyGridDayKeys(t *testing.T) {
	grid := BuildWeeklyGrid(nil, nil, mustTime(t, "2024-01-03T12:00"), domain.ShiftStatusDraft)

	want := [7]string{
		"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04",
		"2024-01-05", "2024-01-06", "2024-01-07",
	}
	assert.Equal(t, want, grid.DayKeys)
}

func TestBuildWeeklyGridWindowBoundary(t *testing.T) {
	inWindow := &domain.Shift{
		ID:     1,
		UserID: 1,
		UnitID: 1,
		// 周日的最后一秒仍然属于本周
		StartTime: time.Date(2024, 1, 7, 23, 59, 59, 0, time.Local),
		Status:    domain.ShiftStatusDraft,
	}
	nextWindow := &domain.Shift{
		ID:     2,
		UserID: 1,
		UnitID: 1,
		// 下一周周一零点不属于本周
		StartTime: time.Date(2024, 1, 8, 0, 0, 0, 0, time.Local),
		Status:    domain.ShiftStatusDraft,
	}

	grid := BuildWeeklyGrid([]*domain.Shift{inWindow, nextWindow}, nil, mustTime(t, "2024-01-03T12:00"), domain.ShiftStatusDraft)

	require.Contains(t, grid.Cells, int64(1))
	assert.Len(t, grid.Cells[1]["2024-01-07"], 1)
	assert.Equal(t, int64(1), grid.Cells[1]["2024-01-07"][0].ID)

	for _, cell := range grid.Cells[1] {
		for _, s := range cell {
			assert.NotEqual(t, int64(2), s.ID)
		}
	}
}

func TestBuildWeeklyGridUTCStartTime(t *testing.T) {
	// 同一时刻用 UTC 表示时，必须落在本地日历的同一天
	local := makeShift(t, "2024-01-02T23:30", "")
	local.ID = 1
	utc := makeShift(t, "2024-01-02T23:30", "")
	utc.ID = 2
	utc.StartTime = utc.StartTime.UTC()

	grid := BuildWeeklyGrid([]*domain.Shift{local, utc}, nil, mustTime(t, "2024-01-01T00:00"), domain.ShiftStatusDraft)

	cell := grid.Cells[1]["2024-01-02"]
	require.Len(t, cell, 2)
	assert.Equal(t, int64(1), cell[0].ID)
	assert.Equal(t, int64(2), cell[1].ID)
}

func TestBuildWeeklyGridStatusFilter(t *testing.T) {
	draft := makeShift(t, "2024-01-02T09:00", "2024-01-02T17:00")
	draft.ID = 1

	noStatus := makeShift(t, "2024-01-02T10:00", "2024-01-02T18:00")
	noStatus.ID = 2
	noStatus.Status = ""

	published := makeShift(t, "2024-01-02T11:00", "2024-01-02T19:00")
	published.ID = 3
	published.Status = domain.ShiftStatusPublished

	shifts := []*domain.Shift{draft, noStatus, published}
	ref := mustTime(t, "2024-01-02T00:00")

	draftGrid := BuildWeeklyGrid(shifts, nil, ref, domain.ShiftStatusDraft)
	require.Len(t, draftGrid.Cells[1]["2024-01-02"], 2)
	// 没有记录状态的班次在草稿视图中可见
	assert.Equal(t, int64(1), draftGrid.Cells[1]["2024-01-02"][0].ID)
	assert.Equal(t, int64(2), draftGrid.Cells[1]["2024-01-02"][1].ID)

	publishedGrid := BuildWeeklyGrid(shifts, nil, ref, domain.ShiftStatusPublished)
	require.Len(t, publishedGrid.Cells[1]["2024-01-02"], 1)
	assert.Equal(t, int64(3), publishedGrid.Cells[1]["2024-01-02"][0].ID)
}

func TestBuildWeeklyGridCellOrder(t *testing.T) {
	later := makeShift(t, "2024-01-02T14:00", "2024-01-02T18:00")
	later.ID = 1
	earlier := makeShift(t, "2024-01-02T08:00", "2024-01-02T12:00")
	earlier.ID = 2

	grid := BuildWeeklyGrid([]*domain.Shift{later, earlier}, nil, mustTime(t, "2024-01-02T00:00"), domain.ShiftStatusDraft)

	cell := grid.Cells[1]["2024-01-02"]
	require.Len(t, cell, 2)
	assert.Equal(t, int64(2), cell[0].ID)
	assert.Equal(t, int64(1), cell[1].ID)
}

func TestBuildWeeklyGridRosterWithoutShifts(t *testing.T) {
	grid := BuildWeeklyGrid(nil, []int64{7, 8}, mustTime(t, "2024-01-03T00:00"), domain.ShiftStatusDraft)

	require.Contains(t, grid.Cells, int64(7))
	require.Contains(t, grid.Cells, int64(8))
	assert.Len(t, grid.Cells[7], 7)
	for _, cell := range grid.Cells[7] {
		assert.Empty(t, cell)
	}
}
