package domain

// DisplaySettings 记录某个单位组合下花名册的显示顺序和被隐藏的用户。
// UnitKey 是排序后用逗号连接的单位 ID 列表。
type DisplaySettings struct {
	ID             int64   `json:"id"`
	UnitKey        string  `json:"unitKey"`
	OrderedUserIDs []int64 `json:"orderedUserIDs"`
	HiddenUserIDs  []int64 `json:"hiddenUserIDs"`
	Version        int32   `json:"-"`
}
