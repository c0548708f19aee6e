package catalog

import (
	"reflect"
	"testing"
)

func TestResolveRecipes_EndToEnd(t *testing.T) {
	woodRef := int64(55)
	craftTime := 30.0
	output := 1
	tier := 2

	items := []ItemRecord{
		{ItemID: 100, Shortname: "wood", DisplayName: "Wood", ObjectRef: &woodRef},
		{ItemID: 101, Shortname: "workbench", DisplayName: "Workbench"},
	}
	recipes := []RecipeRecord{{
		Shortname:        "workbench",
		Ingredients:      []IngredientRef{{Quantity: 2, TargetRef: 55}},
		CraftTimeSeconds: &craftTime,
		OutputQuantity:   &output,
		MinWorkbenchTier: &tier,
	}}

	out := ResolveRecipes(items, recipes)

	var workbench *ItemRecord
	for i := range out {
		if out[i].Shortname == "workbench" {
			workbench = &out[i]
		}
	}
	if workbench == nil {
		t.Fatal("workbench missing from resolved output")
	}

	if len(workbench.Ingredients) != 1 {
		t.Fatalf("workbench has %d ingredients, want 1", len(workbench.Ingredients))
	}
	ing := workbench.Ingredients[0]
	if ing.Quantity != 2 || ing.TargetRef != 55 {
		t.Errorf("ingredient = %+v, want quantity 2 targetRef 55", ing)
	}
	if ing.ResolvedShortname == nil || *ing.ResolvedShortname != "wood" {
		t.Errorf("ResolvedShortname = %v, want wood", ing.ResolvedShortname)
	}
	if ing.ResolvedDisplayName == nil || *ing.ResolvedDisplayName != "Wood" {
		t.Errorf("ResolvedDisplayName = %v, want Wood", ing.ResolvedDisplayName)
	}

	if workbench.CraftTimeSeconds == nil || *workbench.CraftTimeSeconds != craftTime {
		t.Errorf("CraftTimeSeconds = %v, want %v", workbench.CraftTimeSeconds, craftTime)
	}
	if workbench.MinWorkbenchTier == nil || *workbench.MinWorkbenchTier != tier {
		t.Errorf("MinWorkbenchTier = %v, want %d", workbench.MinWorkbenchTier, tier)
	}
}

func TestResolveRecipes_UnresolvableReferenceRetained(t *testing.T) {
	craftTime := 10.0
	output := 1

	items := []ItemRecord{
		{ItemID: 1, Shortname: "torch", DisplayName: "Torch"},
	}
	recipes := []RecipeRecord{{
		Shortname:        "torch",
		Ingredients:      []IngredientRef{{Quantity: 3, TargetRef: 9999}},
		CraftTimeSeconds: &craftTime,
		OutputQuantity:   &output,
	}}

	out := ResolveRecipes(items, recipes)

	if len(out[0].Ingredients) != 1 {
		t.Fatalf("ingredient dropped: %d ingredients, want 1", len(out[0].Ingredients))
	}
	ing := out[0].Ingredients[0]
	if ing.Quantity != 3 || ing.TargetRef != 9999 {
		t.Errorf("ingredient = %+v, want quantity and targetRef preserved", ing)
	}
	if ing.Resolved() {
		t.Error("unresolvable reference reports resolved")
	}
}

func TestResolveRecipes_NoRecipeClearsStaleCraftData(t *testing.T) {
	staleTime := 99.0
	staleOutput := 5

	items := []ItemRecord{{
		ItemID:           1,
		Shortname:        "rock",
		Ingredients:      []IngredientRef{{Quantity: 1, TargetRef: 1}},
		CraftTimeSeconds: &staleTime,
		OutputQuantity:   &staleOutput,
	}}

	out := ResolveRecipes(items, nil)

	if len(out[0].Ingredients) != 0 {
		t.Errorf("Ingredients = %v, want empty", out[0].Ingredients)
	}
	if out[0].Ingredients == nil {
		t.Error("Ingredients is nil, want empty sequence")
	}
	if out[0].CraftTimeSeconds != nil || out[0].OutputQuantity != nil || out[0].MinWorkbenchTier != nil {
		t.Error("stale craft fields not cleared")
	}
}

func TestResolveRecipes_Idempotent(t *testing.T) {
	woodRef := int64(55)
	craftTime := 30.0
	output := 1

	items := []ItemRecord{
		{ItemID: 100, Shortname: "wood", DisplayName: "Wood", ObjectRef: &woodRef},
		{ItemID: 101, Shortname: "workbench", DisplayName: "Workbench"},
	}
	recipes := []RecipeRecord{{
		Shortname:        "workbench",
		Ingredients:      []IngredientRef{{Quantity: 2, TargetRef: 55}},
		CraftTimeSeconds: &craftTime,
		OutputQuantity:   &output,
	}}

	once := ResolveRecipes(items, recipes)
	twice := ResolveRecipes(once, recipes)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("resolution not idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestResolveRecipes_DuplicateObjectRefKeepsFirst(t *testing.T) {
	ref := int64(7)
	craftTime := 1.0
	output := 1

	items := []ItemRecord{
		{ItemID: 1, Shortname: "first", DisplayName: "First", ObjectRef: &ref},
		{ItemID: 2, Shortname: "second", DisplayName: "Second", ObjectRef: &ref},
		{ItemID: 3, Shortname: "thing", DisplayName: "Thing"},
	}
	recipes := []RecipeRecord{{
		Shortname:        "thing",
		Ingredients:      []IngredientRef{{Quantity: 1, TargetRef: 7}},
		CraftTimeSeconds: &craftTime,
		OutputQuantity:   &output,
	}}

	out := ResolveRecipes(items, recipes)
	ing := out[2].Ingredients[0]
	if ing.ResolvedShortname == nil || *ing.ResolvedShortname != "first" {
		t.Errorf("ResolvedShortname = %v, want first occurrence", ing.ResolvedShortname)
	}
}
