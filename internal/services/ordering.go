package services

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/tbourn/go-veg-procurement/internal/domain"
)

var numberedNameRE = regexp.MustCompile(`^(.*?)(\d+)$`)

// OrderHotels returns a sorted copy of hotels for matrix columns.
//
// When every name is "<prefix><integer>" with one shared prefix ("Hotel 1",
// "Hotel 10"), hotels sort by the integer. If any name does not fit, the
// whole set falls back to lexical order by name. Ties break by name, then id.
func OrderHotels(hotels []domain.Hotel) []domain.Hotel {
	out := make([]domain.Hotel, len(hotels))
	copy(out, hotels)

	nums, ok := numericSuffixes(out)
	if ok {
		sort.SliceStable(out, func(i, j int) bool {
			a, b := nums[out[i].ID], nums[out[j].ID]
			if a != b {
				return a < b
			}
			return lessByNameID(out[i], out[j])
		})
		return out
	}
	sort.SliceStable(out, func(i, j int) bool { return lessByNameID(out[i], out[j]) })
	return out
}

// numericSuffixes parses the trailing integer of every hotel name. It fails
// if a name has no suffix, the prefixes differ, or ids repeat.
func numericSuffixes(hotels []domain.Hotel) (map[string]uint64, bool) {
	if len(hotels) == 0 {
		return nil, false
	}
	nums := make(map[string]uint64, len(hotels))
	prefix := ""
	for i, h := range hotels {
		m := numberedNameRE.FindStringSubmatch(strings.TrimSpace(h.Name))
		if m == nil {
			return nil, false
		}
		p := strings.TrimSpace(m[1])
		if i == 0 {
			prefix = p
		} else if p != prefix {
			return nil, false
		}
		n, err := strconv.ParseUint(m[2], 10, 64)
		if err != nil {
			return nil, false
		}
		if _, dup := nums[h.ID]; dup {
			return nil, false
		}
		nums[h.ID] = n
	}
	return nums, true
}

func lessByNameID(a, b domain.Hotel) bool {
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return a.ID < b.ID
}
