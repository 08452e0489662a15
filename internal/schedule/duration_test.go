package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/teamshift-dev/workforce-manager/backend/internal/domain"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation("2006-01-02T15:04", value, time.Local)
	if err != nil {
		t.Fatalf("无法解析时间 %s: %v", value, err)
	}
	return parsed
}

func makeShift(t *testing.T, start, end string) *domain.Shift {
	t.Helper()
	s := &domain.Shift{
		UserID:    1,
		UnitID:    1,
		StartTime: mustTime(t, start),
		Status:    domain.ShiftStatusDraft,
	}
	if end != "" {
		endTime := mustTime(t, end)
		s.EndTime = &endTime
	}
	return s
}

func TestShiftHours(t *testing.T) {
	tests := []struct {
		name        string
		shift       *domain.Shift
		closingTime string
		want        float64
	}{
		{
			name:  "正常班次",
			shift: makeShift(t, "2024-01-01T08:00", "2024-01-01T16:30"),
			want:  8.5,
		},
		{
			name:  "结束时间早于开始时间按零处理",
			shift: makeShift(t, "2024-01-01T16:00", "2024-01-01T08:00"),
			want:  0,
		},
		{
			name:  "结束时间等于开始时间按零处理",
			shift: makeShift(t, "2024-01-01T08:00", "2024-01-01T08:00"),
			want:  0,
		},
		{
			name:        "没有结束时间时用打烊时间推算",
			shift:       makeShift(t, "2024-01-01T14:00", ""),
			closingTime: "22:00",
			want:        8,
		},
		{
			name:        "打烊时间跨午夜时顺延到第二天",
			shift:       makeShift(t, "2024-01-01T22:00", ""),
			closingTime: "02:00",
			want:        4,
		},
		{
			name:  "没有结束时间也没有打烊时间",
			shift: makeShift(t, "2024-01-01T08:00", ""),
			want:  0,
		},
		{
			name:        "打烊时间格式非法按零处理",
			shift:       makeShift(t, "2024-01-01T08:00", ""),
			closingTime: "二十二点",
			want:        0,
		},
		{
			name: "休息日无论时间如何都是零",
			shift: func() *domain.Shift {
				s := makeShift(t, "2024-01-01T08:00", "2024-01-01T16:00")
				s.IsDayOff = true
				return s
			}(),
			closingTime: "22:00",
			want:        0,
		},
		{
			name:  "缺失开始时间按零处理",
			shift: &domain.Shift{UserID: 1, UnitID: 1},
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ShiftHours(tt.shift, tt.closingTime), 1e-9)
		})
	}
}

func TestShiftHoursNeverNegative(t *testing.T) {
	// 打烊时间推算出来的结束时间必须落在开始时间之后
	s := makeShift(t, "2024-01-01T23:30", "")
	assert.InDelta(t, 0.5, ShiftHours(s, "00:00"), 1e-9)

	assert.Zero(t, ShiftHours(nil, "22:00"))
}
