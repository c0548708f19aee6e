package catalog

// Merge combines prefab-derived and gamedata-derived item records into a
// single unified list keyed by ItemID.
//
// For each prefab record with a gamedata counterpart, every field present in
// the gamedata record overrides the corresponding prefab field; fields the
// gamedata source omits keep the prefab value. Prefab records with no
// counterpart pass through unchanged, and gamedata records with no prefab
// counterpart are appended as new entries. The merge is total: every input
// item appears exactly once in the output, in prefab order followed by
// gamedata-only records in their input order.
func Merge(prefabItems, gamedataItems []ItemRecord) []ItemRecord {
	byID := make(map[int]ItemRecord, len(gamedataItems))
	for _, g := range gamedataItems {
		byID[g.ItemID] = g
	}

	out := make([]ItemRecord, 0, len(prefabItems)+len(gamedataItems))
	seen := make(map[int]bool, len(prefabItems))

	for _, p := range prefabItems {
		if seen[p.ItemID] {
			continue
		}
		seen[p.ItemID] = true
		if g, ok := byID[p.ItemID]; ok {
			out = append(out, mergeRecords(p, g))
			continue
		}
		out = append(out, p)
	}

	for _, g := range gamedataItems {
		if seen[g.ItemID] {
			continue
		}
		seen[g.ItemID] = true
		out = append(out, g)
	}

	return out
}

// mergeRecords applies field-level gamedata-over-prefab precedence.
// Fields the gamedata record carries win; the rest keep the prefab value.
func mergeRecords(p, g ItemRecord) ItemRecord {
	m := p
	m.Origin = OriginMerged

	if g.Shortname != "" {
		m.Shortname = g.Shortname
	}
	if g.DisplayName != "" {
		m.DisplayName = g.DisplayName
	}
	if g.Description != nil {
		m.Description = g.Description
	}
	if g.CategoryID != nil {
		m.CategoryID = g.CategoryID
	}
	if g.Stackable != nil {
		m.Stackable = g.Stackable
	}
	if g.Volume != nil {
		m.Volume = g.Volume
	}
	if g.MaxDraggable != nil {
		m.MaxDraggable = g.MaxDraggable
	}
	if g.Wearable != nil {
		m.Wearable = g.Wearable
	}
	if g.Holdable != nil {
		m.Holdable = g.Holdable
	}
	if g.Usable != nil {
		m.Usable = g.Usable
	}
	if g.HasSkins != nil {
		m.HasSkins = g.HasSkins
	}
	// Gamedata records never carry an object identifier, so the prefab's
	// ObjectRef survives the merge for ingredient resolution.
	if g.ObjectRef != nil {
		m.ObjectRef = g.ObjectRef
	}

	m.CategoryName = CategoryName(m.CategoryID)
	return m
}
