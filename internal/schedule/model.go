package schedule

import (
	"time"

	"github.com/teamshift-dev/workforce-manager/backend/internal/domain"
)

const dateLayout = "2006-01-02"

// WeeklyGrid: 以用户和日期为键的一周班次网格，纯内存派生数据，不落库。
// DayKeys 固定为所选周周一到周日的 7 个日期字符串。
type WeeklyGrid struct {
	WeekStart time.Time                            `json:"weekStart"`
	DayKeys   [7]string                            `json:"dayKeys"`
	Cells     map[int64]map[string][]*domain.Shift `json:"cells"`
}

// PositionGroup: 花名册中按职位分出的一组用户
type PositionGroup struct {
	Position string         `json:"position"`
	Users    []*domain.User `json:"users"`
}

// DraftSummary: 某个单位在一周内待发布的草稿班次数量
type DraftSummary struct {
	UnitID int64 `json:"unitID"`
	Count  int   `json:"count"`
}

// MonthlyPayroll: 月度的工时与工资估算
type MonthlyPayroll struct {
	Hours  float64 `json:"hours"`
	Amount float64 `json:"amount"`
}

// PayrollBucket: 按周分桶的工资估算
type PayrollBucket struct {
	WeekStart string  `json:"weekStart"`
	Hours     float64 `json:"hours"`
	Amount    float64 `json:"amount"`
}
