package catalog

// Merge folds an uploaded catalog fragment into the existing catalog and
// returns the number of records added (whole boilers count 1 each, added
// surfaces count 1 each).
//
// A boiler whose id is unknown is appended wholesale. For a known id only
// surfaces with names not already present on that boiler are appended;
// nothing is ever updated in place. Incoming boilers without an id are
// skipped.
func Merge(existing *Catalog, incoming Catalog) int {
	count := 0
	if len(incoming.Boilers) == 0 {
		return count
	}

	// Index by position, not pointer: appends below may reallocate the
	// backing array.
	index := make(map[string]int, len(existing.Boilers))
	for i := range existing.Boilers {
		index[existing.Boilers[i].ID] = i
	}

	for _, candidate := range incoming.Boilers {
		if candidate.ID == "" {
			continue
		}
		pos, ok := index[candidate.ID]
		if !ok {
			existing.Boilers = append(existing.Boilers, candidate)
			index[candidate.ID] = len(existing.Boilers) - 1
			count++
			continue
		}

		target := &existing.Boilers[pos]
		names := make(map[string]bool, len(target.Surfaces))
		for _, s := range target.Surfaces {
			if s.Name != "" {
				names[s.Name] = true
			}
		}
		for _, s := range candidate.Surfaces {
			if names[s.Name] {
				continue
			}
			target.Surfaces = append(target.Surfaces, s)
			names[s.Name] = true
			count++
		}
	}
	return count
}
