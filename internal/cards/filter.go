package cards

import "strings"

// FilterOptions selects cards for export. Empty options select everything.
type FilterOptions struct {
	Pages     []int
	FreeWords string
}

func Filter(cs []Card, opt FilterOptions) []Card {
	var out []Card
	for _, c := range cs {
		if len(opt.Pages) > 0 {
			matched := false
			for _, p := range opt.Pages {
				if c.PageIndex == p {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
		}
		if opt.FreeWords != "" {
			ok := true
			for _, k := range strings.Fields(opt.FreeWords) {
				k = strings.ToLower(k)
				if !strings.Contains(strings.ToLower(c.Title), k) &&
					!strings.Contains(strings.ToLower(c.Content), k) {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}
