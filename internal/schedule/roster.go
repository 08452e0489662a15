package schedule

import (
	"sort"

	"github.com/teamshift-dev/workforce-manager/backend/internal/domain"
)

const (
	DirectionUp   = "up"
	DirectionDown = "down"
)

// ApplyDisplayOrder 先按持久化的顺序排列花名册，
// 不在顺序列表中的用户按职位和姓名的自然顺序追加在后面。
func ApplyDisplayOrder(roster []*domain.User, orderedIDs []int64) []*domain.User {
	byID := make(map[int64]*domain.User, len(roster))
	for _, u := range roster {
		byID[u.ID] = u
	}

	ordered := make([]*domain.User, 0, len(roster))
	seen := make(map[int64]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		if u, exists := byID[id]; exists && !seen[id] {
			ordered = append(ordered, u)
			seen[id] = true
		}
	}

	rest := make([]*domain.User, 0)
	for _, u := range roster {
		if !seen[u.ID] {
			rest = append(rest, u)
		}
	}
	sort.SliceStable(rest, func(i, j int) bool {
		if rest[i].Position != rest[j].Position {
			return rest[i].Position < rest[j].Position
		}
		return rest[i].FullName < rest[j].FullName
	})

	return append(ordered, rest...)
}

// GroupByPosition 把已经排好序的花名册按职位分组，
// 分组顺序与职位在序列中首次出现的顺序一致。
func GroupByPosition(ordered []*domain.User) []*PositionGroup {
	groups := make([]*PositionGroup, 0)
	groupMap := make(map[string]*PositionGroup)

	for _, u := range ordered {
		group, exists := groupMap[u.Position]
		if !exists {
			group = &PositionGroup{Position: u.Position, Users: make([]*domain.User, 0)}
			groupMap[u.Position] = group
			groups = append(groups, group)
		}
		group.Users = append(group.Users, u)
	}

	return groups
}

// FlattenGroups 把分组还原成扁平的用户 ID 列表，用于持久化
func FlattenGroups(groups []*PositionGroup) []int64 {
	ids := make([]int64, 0)
	for _, g := range groups {
		for _, u := range g.Users {
			ids = append(ids, u.ID)
		}
	}
	return ids
}

// MoveUser 把用户与同组内紧邻的用户交换位置，返回交换后的扁平 ID 列表。
// 用户已经在组内边界时不做任何改动，移动绝不会跨出职位分组。
func MoveUser(groups []*PositionGroup, userID int64, direction string) []int64 {
	for _, g := range groups {
		for i, u := range g.Users {
			if u.ID != userID {
				continue
			}

			switch direction {
			case DirectionUp:
				if i > 0 {
					g.Users[i-1], g.Users[i] = g.Users[i], g.Users[i-1]
				}
			case DirectionDown:
				if i < len(g.Users)-1 {
					g.Users[i], g.Users[i+1] = g.Users[i+1], g.Users[i]
				}
			}

			return FlattenGroups(groups)
		}
	}

	return FlattenGroups(groups)
}

// MoveGroup 把整个职位分组与紧邻的分组整体交换位置。
// 分组已经在边界时不做任何改动。
func MoveGroup(groups []*PositionGroup, position string, direction string) []int64 {
	for i, g := range groups {
		if g.Position != position {
			continue
		}

		switch direction {
		case DirectionUp:
			if i > 0 {
				groups[i-1], groups[i] = groups[i], groups[i-1]
			}
		case DirectionDown:
			if i < len(groups)-1 {
				groups[i], groups[i+1] = groups[i+1], groups[i]
			}
		}

		break
	}

	return FlattenGroups(groups)
}

// HiddenSet 把隐藏用户的 ID 列表转成集合
func HiddenSet(ids []int64) map[int64]bool {
	set := make(map[int64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// VisibleUsers 过滤掉被隐藏的用户。隐藏只影响合计，
// 不会把用户从持久化的顺序列表中移除。
func VisibleUsers(ordered []*domain.User, hidden map[int64]bool) []*domain.User {
	visible := make([]*domain.User, 0, len(ordered))
	for _, u := range ordered {
		if !hidden[u.ID] {
			visible = append(visible, u)
		}
	}
	return visible
}
