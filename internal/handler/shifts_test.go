package handler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teamshift-dev/workforce-manager/backend/internal/domain"
)

func patchTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation("2006-01-02T15:04", value, time.Local)
	if err != nil {
		t.Fatalf("无法解析时间 %s: %v", value, err)
	}
	return parsed
}

func TestApplyShiftPatch(t *testing.T) {
	storedEnd := func(t *testing.T, value string) *time.Time {
		t.Helper()
		end := patchTime(t, value)
		return &end
	}
	ptr := func(v time.Time) *time.Time { return &v }

	tests := []struct {
		name    string
		shift   *domain.Shift
		patch   *shiftPatch
		wantEnd string
		wantErr bool
	}{
		{
			name: "只改上班时间时已存的下班时间顺延到第二天",
			shift: &domain.Shift{
				StartTime: patchTime(t, "2024-01-02T09:00"),
				EndTime:   storedEnd(t, "2024-01-02T17:00"),
			},
			patch:   &shiftPatch{StartTime: ptr(patchTime(t, "2024-01-02T20:00"))},
			wantEnd: "2024-01-03T17:00",
		},
		{
			name: "新的上班时间仍早于已存的下班时间时保持不变",
			shift: &domain.Shift{
				StartTime: patchTime(t, "2024-01-02T09:00"),
				EndTime:   storedEnd(t, "2024-01-02T17:00"),
			},
			patch:   &shiftPatch{StartTime: ptr(patchTime(t, "2024-01-02T10:00"))},
			wantEnd: "2024-01-02T17:00",
		},
		{
			name: "新的上班时间等于已存的下班时间时报错",
			shift: &domain.Shift{
				StartTime: patchTime(t, "2024-01-02T09:00"),
				EndTime:   storedEnd(t, "2024-01-02T17:00"),
			},
			patch:   &shiftPatch{StartTime: ptr(patchTime(t, "2024-01-02T17:00"))},
			wantErr: true,
		},
		{
			name: "新传入的下班时间早于上班时间时顺延",
			shift: &domain.Shift{
				StartTime: patchTime(t, "2024-01-02T22:00"),
			},
			patch:   &shiftPatch{EndTime: ptr(patchTime(t, "2024-01-02T02:00"))},
			wantEnd: "2024-01-03T02:00",
		},
		{
			name: "没有下班时间的班次只改上班时间不受影响",
			shift: &domain.Shift{
				StartTime: patchTime(t, "2024-01-02T09:00"),
			},
			patch: &shiftPatch{StartTime: ptr(patchTime(t, "2024-01-02T20:00"))},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := applyShiftPatch(tt.shift, tt.patch)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			if tt.wantEnd == "" {
				assert.Nil(t, tt.shift.EndTime)
				return
			}
			require.NotNil(t, tt.shift.EndTime)
			assert.True(t, tt.shift.EndTime.Equal(patchTime(t, tt.wantEnd)))
			assert.True(t, tt.shift.EndTime.After(tt.shift.StartTime))
		})
	}
}

func TestApplyShiftPatchOtherFields(t *testing.T) {
	dayOff := true
	note := "顶替晚班"
	shift := &domain.Shift{StartTime: patchTime(t, "2024-01-02T09:00"), Note: "原备注"}

	require.NoError(t, applyShiftPatch(shift, &shiftPatch{IsDayOff: &dayOff, Note: &note}))
	assert.True(t, shift.IsDayOff)
	assert.Equal(t, "顶替晚班", shift.Note)
	// 没有出现在请求里的字段保持原值
	assert.Equal(t, patchTime(t, "2024-01-02T09:00"), shift.StartTime)
}
