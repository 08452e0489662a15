package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teamshift-dev/workforce-manager/backend/internal/domain"
)

func rosterFixture() []*domain.User {
	return []*domain.User{
		{ID: 1, FullName: "张伟", Position: "前台"},
		{ID: 2, FullName: "李芳", Position: "前台"},
		{ID: 3, FullName: "王强", Position: "后厨"},
		{ID: 4, FullName: "陈静", Position: "后厨"},
		{ID: 5, FullName: "刘杰", Position: "保洁"},
	}
}

func TestApplyDisplayOrder(t *testing.T) {
	roster := rosterFixture()

	ordered := ApplyDisplayOrder(roster, []int64{3, 1})

	require.Len(t, ordered, 5)
	assert.Equal(t, int64(3), ordered[0].ID)
	assert.Equal(t, int64(1), ordered[1].ID)
	// 不在持久化顺序中的用户按职位和姓名追加在后面
	assert.Equal(t, int64(5), ordered[2].ID) // 保洁
	assert.Equal(t, int64(2), ordered[3].ID) // 前台 李芳
	assert.Equal(t, int64(4), ordered[4].ID) // 后厨 陈静
}

func TestApplyDisplayOrderIgnoresUnknownIDs(t *testing.T) {
	ordered := ApplyDisplayOrder(rosterFixture(), []int64{99, 2, 2})

	require.Len(t, ordered, 5)
	assert.Equal(t, int64(2), ordered[0].ID)
}

func TestGroupByPositionFirstSeenOrder(t *testing.T) {
	ordered := ApplyDisplayOrder(rosterFixture(), []int64{3, 1, 4, 2, 5})

	groups := GroupByPosition(ordered)

	require.Len(t, groups, 3)
	assert.Equal(t, "后厨", groups[0].Position)
	assert.Equal(t, "前台", groups[1].Position)
	assert.Equal(t, "保洁", groups[2].Position)
}

func TestMoveUserWithinGroup(t *testing.T) {
	ordered := ApplyDisplayOrder(rosterFixture(), []int64{1, 2, 3, 4, 5})
	groups := GroupByPosition(ordered)

	ids := MoveUser(groups, 2, DirectionUp)
	assert.Equal(t, []int64{2, 1, 3, 4, 5}, ids)
}

func TestMoveUserBoundaryNoOp(t *testing.T) {
	// 组内第一个用户向上移动不改变顺序
	groups := GroupByPosition(ApplyDisplayOrder(rosterFixture(), []int64{1, 2, 3, 4, 5}))
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, MoveUser(groups, 1, DirectionUp))

	// 组内最后一个用户向下移动也不改变顺序，不会跨进相邻分组
	groups = GroupByPosition(ApplyDisplayOrder(rosterFixture(), []int64{1, 2, 3, 4, 5}))
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, MoveUser(groups, 2, DirectionDown))
}

func TestMoveGroup(t *testing.T) {
	groups := GroupByPosition(ApplyDisplayOrder(rosterFixture(), []int64{1, 2, 3, 4, 5}))

	// 整组移动时组内成员顺序保持不变
	ids := MoveGroup(groups, "后厨", DirectionUp)
	assert.Equal(t, []int64{3, 4, 1, 2, 5}, ids)
}

func TestMoveGroupBoundaryNoOp(t *testing.T) {
	groups := GroupByPosition(ApplyDisplayOrder(rosterFixture(), []int64{1, 2, 3, 4, 5}))
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, MoveGroup(groups, "前台", DirectionUp))

	groups = GroupByPosition(ApplyDisplayOrder(rosterFixture(), []int64{1, 2, 3, 4, 5}))
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, MoveGroup(groups, "保洁", DirectionDown))
}

func TestDisplayOrderRoundTrip(t *testing.T) {
	roster := rosterFixture()
	settings := &domain.DisplaySettings{
		OrderedUserIDs: []int64{5, 3, 1, 4, 2},
		HiddenUserIDs:  []int64{4},
	}

	first := ApplyDisplayOrder(roster, settings.OrderedUserIDs)
	persisted := FlattenGroups(GroupByPosition(first))

	// 持久化后重新加载，顺序和可见集合保持一致
	second := ApplyDisplayOrder(roster, persisted)
	assert.Equal(t, persisted, FlattenGroups(GroupByPosition(second)))

	hidden := HiddenSet(settings.HiddenUserIDs)
	visibleFirst := VisibleUsers(first, hidden)
	visibleSecond := VisibleUsers(second, hidden)
	require.Equal(t, len(visibleFirst), len(visibleSecond))
	for i := range visibleFirst {
		assert.Equal(t, visibleFirst[i].ID, visibleSecond[i].ID)
	}
}

func TestVisibleUsersKeepsOrder(t *testing.T) {
	ordered := ApplyDisplayOrder(rosterFixture(), []int64{5, 4, 3, 2, 1})

	visible := VisibleUsers(ordered, HiddenSet([]int64{3}))

	require.Len(t, visible, 4)
	assert.Equal(t, int64(5), visible[0].ID)
	assert.Equal(t, int64(4), visible[1].ID)
	assert.Equal(t, int64(2), visible[2].ID)
	assert.Equal(t, int64(1), visible[3].ID)
}
