package member

import (
	"sort"
	"strings"
)

// roleRanks orders designations for the flat member listing.
var roleRanks = map[string]int{
	"leader":              1,
	"president":           2,
	"vice president":      3,
	"secretary":           4,
	"joint secretary":     4,
	"department head":     5,
	"technical team head": 5,
	"treasurer":           5,
	"team lead":           6,
	"executive":           7,
	"member":              8,
}

const unrankedRole = 99

// RoleRank maps a designation to its sort rank; unrecognized roles sink to
// the bottom.
func RoleRank(role string) int {
	if rank, ok := roleRanks[strings.ToLower(strings.TrimSpace(role))]; ok {
		return rank
	}
	return unrankedRole
}

// SortByRank orders members by designation rank, ties broken by ascending
// join time. A missing join time sorts first.
func SortByRank(members []Member) []Member {
	out := make([]Member, len(members))
	copy(out, members)
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := RoleRank(out[i].Role), RoleRank(out[j].Role)
		if ri != rj {
			return ri < rj
		}
		return joinKey(out[i]) < joinKey(out[j])
	})
	return out
}

// joinKey treats a missing join time as 0 so those members sort first.
func joinKey(m Member) int64 {
	if m.JoinedAt.IsZero() {
		return 0
	}
	return m.JoinedAt.UnixMilli()
}

// Groups partitions members into the six display buckets.
type Groups struct {
	President       []Member `json:"president"`
	Secretary       []Member `json:"secretary"`
	DepartmentHeads []Member `json:"departmentHeads"`
	TeamLead        []Member `json:"teamLead"`
	Executive       []Member `json:"executive"`
	Members         []Member `json:"members"`
}

// GroupByRole assigns each member to exactly one bucket by case-insensitive
// substring match, tested in priority order; anything unmatched lands in
// Members. A role containing "president" wins even if it also says "member".
func GroupByRole(members []Member) Groups {
	var g Groups
	for _, m := range members {
		role := strings.ToLower(m.Role)
		switch {
		case strings.Contains(role, "president"):
			g.President = append(g.President, m)
		case strings.Contains(role, "secretary"):
			g.Secretary = append(g.Secretary, m)
		case strings.Contains(role, "head") || strings.Contains(role, "treasurer"):
			g.DepartmentHeads = append(g.DepartmentHeads, m)
		case strings.Contains(role, "lead"):
			g.TeamLead = append(g.TeamLead, m)
		case strings.Contains(role, "executive"):
			g.Executive = append(g.Executive, m)
		default:
			g.Members = append(g.Members, m)
		}
	}
	return g
}

// DepartmentCount is one slice of the department distribution.
type DepartmentCount struct {
	Department string `json:"department"`
	Count      int    `json:"count"`
}

// DepartmentDistribution counts members per department, largest first, name
// ascending on ties. Members without a department are grouped under "Other".
func DepartmentDistribution(members []Member) []DepartmentCount {
	counts := make(map[string]int)
	for _, m := range members {
		dept := m.Department
		if dept == "" {
			dept = "Other"
		}
		counts[dept]++
	}
	out := make([]DepartmentCount, 0, len(counts))
	for dept, n := range counts {
		out = append(out, DepartmentCount{Department: dept, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Department < out[j].Department
	})
	return out
}
