// Package eval scores construct similarity matrices against the
// human-curated gold standard of construct identity.
package eval

import (
	"sort"

	"github.com/SiegfriedLudwig/is-constructs/table"
)

// PoolMember is one (pool, member) record of the gold standard: two
// members sharing a pool are judged conceptually identical.
type PoolMember struct {
	Pool   string
	Member string
}

// GoldIdentity builds the binary construct identity table from pool
// membership. ids fixes the table labeling; when nil, the sorted distinct
// member ids found in the pools are used. The result is symmetric with a
// unit diagonal and is treated as immutable ground truth.
func GoldIdentity(members []PoolMember, ids []string) *table.Table {
	if ids == nil {
		seen := make(map[string]bool)
		for _, pm := range members {
			if !seen[pm.Member] {
				seen[pm.Member] = true
				ids = append(ids, pm.Member)
			}
		}
		sort.Strings(ids)
	}

	t := table.New(ids)
	pools := make(map[string][]string)
	for _, pm := range members {
		pools[pm.Pool] = append(pools[pm.Pool], pm.Member)
	}
	for _, pool := range pools {
		for a := 0; a < len(pool)-1; a += 1 {
			ia, ok := t.Index[pool[a]]
			if !ok {
				continue
			}
			for b := a + 1; b < len(pool); b += 1 {
				ib, ok := t.Index[pool[b]]
				if !ok {
					continue
				}
				t.M.Set(ia, ib, 1)
				t.M.Set(ib, ia, 1)
			}
		}
	}
	for i := range ids {
		t.M.Set(i, i, 1)
	}
	return t
}
