package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teamshift-dev/workforce-manager/backend/internal/domain"
)

func TestValidateTimeOfDay(t *testing.T) {
	assert.NoError(t, ValidateTimeOfDay("09:00"))
	assert.NoError(t, ValidateTimeOfDay("23:59"))
	assert.Error(t, ValidateTimeOfDay("24:00"))
	assert.Error(t, ValidateTimeOfDay("9:00:00"))
	assert.Error(t, ValidateTimeOfDay("早上九点"))
}

func TestResolveShiftEnd(t *testing.T) {
	start := time.Date(2024, 1, 1, 22, 0, 0, 0, time.Local)

	// 正常情况
	end, err := ResolveShiftEnd(start, start.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, start.Add(2*time.Hour), end)

	// 跨午夜录入：下班时间早于上班时间时顺延到第二天
	enteredEnd := time.Date(2024, 1, 1, 2, 0, 0, 0, time.Local)
	end, err = ResolveShiftEnd(start, enteredEnd)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 2, 2, 0, 0, 0, time.Local), end)
	assert.True(t, end.After(start))

	// 相等视为非法
	_, err = ResolveShiftEnd(start, start)
	assert.Error(t, err)
}

func TestValidateWages(t *testing.T) {
	assert.NoError(t, ValidateWages(map[int64]float64{1: 0, 2: 55.5}))
	assert.Error(t, ValidateWages(map[int64]float64{1: -1}))
}

func TestValidateBusinessHours(t *testing.T) {
	hours := &domain.BusinessHours{}
	for i := range hours.Daily {
		hours.Daily[i] = domain.DailyHours{OpeningTime: "09:00", ClosingTime: "22:00"}
	}
	assert.NoError(t, ValidateBusinessHours(hours))

	hours.Daily[3].ClosingTime = "晚上十点"
	assert.Error(t, ValidateBusinessHours(hours))
}
