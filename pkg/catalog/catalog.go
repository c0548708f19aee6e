// Package catalog defines the canonical item and recipe model for lootdex,
// plus the pure set operations over it: merging the two record sources and
// resolving recipe ingredient references.
//
// # Identity
//
// Three independent keyspaces exist and are kept in separate index
// structures:
//   - ItemID: the stable cross-source identifier; unique in the final set.
//   - Shortname: the stable machine name; join key between items and recipes.
//   - ObjectRef: the opaque internal object identifier from the export
//     graph; used only to resolve ingredient references.
//
// # Optional fields
//
// Optional fields are pointers so the merge can distinguish "absent in
// source" from "present with the default value". Normalize applies the
// documented defaults exactly once, after merging and resolution, right
// before the dataset is written.
package catalog

// Origin marks which source an item record came from.
type Origin string

// Origin values.
const (
	OriginPrefab   Origin = "prefab"
	OriginGamedata Origin = "gamedata"
	OriginMerged   Origin = "merged"
)

// Defaults applied by Normalize when a field is absent from every source.
const (
	DefaultStackable    = 1
	DefaultVolume       = 0
	DefaultMaxDraggable = 0
)

// ItemRecord is the canonical unit of output.
type ItemRecord struct {
	ItemID      int     `json:"itemId"`
	Shortname   string  `json:"shortname"`
	DisplayName string  `json:"displayName"`
	Description *string `json:"description,omitempty"`

	CategoryID   *int   `json:"categoryId"`
	CategoryName string `json:"categoryName"`

	Stackable    *int `json:"stackable"`
	Volume       *int `json:"volume"`
	MaxDraggable *int `json:"maxDraggable"`

	Wearable *bool `json:"wearable"`
	Holdable *bool `json:"holdable"`
	Usable   *bool `json:"usable"`
	HasSkins *bool `json:"hasSkins"`

	// ObjectRef is present only for prefab-derived records. It is never the
	// primary identity of an item; it exists for ingredient resolution.
	ObjectRef *int64 `json:"objectRef,omitempty"`

	// Ingredients is never nil in a normalized record; an item without a
	// recipe carries an empty sequence.
	Ingredients []IngredientRef `json:"ingredients"`

	CraftTimeSeconds *float64 `json:"craftTimeSeconds"`
	OutputQuantity   *int     `json:"outputQuantity"`
	MinWorkbenchTier *int     `json:"minWorkbenchTier"`

	Origin Origin `json:"origin"`
}

// IngredientRef is a single crafting requirement. The resolved fields are
// populated only after successful resolution; an unresolvable reference
// keeps its quantity and target and is retained, not dropped.
type IngredientRef struct {
	Quantity            int     `json:"quantity"`
	TargetRef           int64   `json:"targetRef"`
	ResolvedShortname   *string `json:"resolvedShortname,omitempty"`
	ResolvedDisplayName *string `json:"resolvedDisplayName,omitempty"`
}

// Resolved reports whether the reference has been matched to a known item.
func (r IngredientRef) Resolved() bool {
	return r.ResolvedShortname != nil
}

// RecipeRecord is the intermediate crafting record extracted from a
// description file. It is joined to an ItemRecord by shortname during
// resolution and is not part of the final output.
type RecipeRecord struct {
	Shortname        string
	Ingredients      []IngredientRef
	CraftTimeSeconds *float64
	OutputQuantity   *int
	MinWorkbenchTier *int
}

// Normalize fills defaulted fields on a record so the written dataset has a
// stable shape: numeric attributes get their documented fallbacks, flags
// become concrete booleans, the category name is derived from the category
// table, and Ingredients is never nil.
func (r *ItemRecord) Normalize() {
	if r.Stackable == nil {
		r.Stackable = intPtr(DefaultStackable)
	}
	if r.Volume == nil {
		r.Volume = intPtr(DefaultVolume)
	}
	if r.MaxDraggable == nil {
		r.MaxDraggable = intPtr(DefaultMaxDraggable)
	}
	if r.Wearable == nil {
		r.Wearable = boolPtr(false)
	}
	if r.Holdable == nil {
		r.Holdable = boolPtr(false)
	}
	if r.Usable == nil {
		r.Usable = boolPtr(false)
	}
	if r.HasSkins == nil {
		r.HasSkins = boolPtr(false)
	}
	if r.Ingredients == nil {
		r.Ingredients = []IngredientRef{}
	}
	r.CategoryName = CategoryName(r.CategoryID)
}

func intPtr(v int) *int       { return &v }
func boolPtr(v bool) *bool    { return &v }
func strPtr(v string) *string { return &v }
