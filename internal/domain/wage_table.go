package domain

// WageTable 记录某个用户在各个单位的时薪，只有本人可以编辑。
// 某个单位没有对应的时薪时，工资估算按 0 处理。
type WageTable struct {
	ID      int64             `json:"id"`
	UserID  int64             `json:"userID"`
	Wages   map[int64]float64 `json:"wages"`
	Version int32             `json:"-"`
}
