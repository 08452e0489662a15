package domain

import "time"

// DailyHours 的时间均为 HH:MM 格式的字符串
type DailyHours struct {
	OpeningTime string `json:"openingTime"`
	ClosingTime string `json:"closingTime"`
}

// BusinessHours 表示某个单位在某一周的营业时间设置。
// Daily 的下标与 time.Weekday 一致（0 为周日）。
type BusinessHours struct {
	ID        int64         `json:"id"`
	UnitID    int64         `json:"unitID"`
	WeekStart time.Time     `json:"weekStart"`
	Daily     [7]DailyHours `json:"daily"`
	Version   int32         `json:"-"`
}
