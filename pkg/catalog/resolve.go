package catalog

// ResolveRecipes attaches crafting data to each item and rewrites recipe
// ingredient references into resolved item references.
//
// Two indices are built: ObjectRef → item (only items with a non-nil
// ObjectRef participate) and shortname → recipe. Each item is then joined to
// a recipe by its shortname. When a recipe matches, the craft fields are
// copied onto the item and every ingredient's TargetRef is looked up in the
// ObjectRef index; a hit populates the resolved names on a copy of the
// ingredient, a miss keeps the ingredient unresolved. When no recipe
// matches, the item's ingredients become an empty sequence and the craft
// fields nil — stale crafting data from earlier stages is overwritten, so
// resolution is idempotent and independent of merge order.
//
// ResolveRecipes is a pure function of its inputs; a lookup miss is not an
// error.
func ResolveRecipes(items []ItemRecord, recipes []RecipeRecord) []ItemRecord {
	byObjectRef := make(map[int64]ItemRecord)
	for _, it := range items {
		if it.ObjectRef == nil {
			continue
		}
		if _, exists := byObjectRef[*it.ObjectRef]; !exists {
			byObjectRef[*it.ObjectRef] = it
		}
	}

	byShortname := make(map[string]RecipeRecord, len(recipes))
	for _, rec := range recipes {
		if _, exists := byShortname[rec.Shortname]; !exists {
			byShortname[rec.Shortname] = rec
		}
	}

	out := make([]ItemRecord, len(items))
	for i, it := range items {
		rec, ok := byShortname[it.Shortname]
		if !ok {
			it.Ingredients = []IngredientRef{}
			it.CraftTimeSeconds = nil
			it.OutputQuantity = nil
			it.MinWorkbenchTier = nil
			out[i] = it
			continue
		}

		it.CraftTimeSeconds = cloneFloat(rec.CraftTimeSeconds)
		it.OutputQuantity = cloneInt(rec.OutputQuantity)
		it.MinWorkbenchTier = cloneInt(rec.MinWorkbenchTier)

		ings := make([]IngredientRef, 0, len(rec.Ingredients))
		for _, ing := range rec.Ingredients {
			resolved := IngredientRef{
				Quantity:  ing.Quantity,
				TargetRef: ing.TargetRef,
			}
			if target, hit := byObjectRef[ing.TargetRef]; hit {
				resolved.ResolvedShortname = strPtr(target.Shortname)
				resolved.ResolvedDisplayName = strPtr(target.DisplayName)
			}
			ings = append(ings, resolved)
		}
		it.Ingredients = ings
		out[i] = it
	}

	return out
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
