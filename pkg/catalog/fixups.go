package catalog

// Shortnames subject to content fixups. The exported blueprint fragment
// prefabs carry placeholder names and a wrong category, so these two items
// always receive a fixed display name and category regardless of what the
// file declares.
const (
	ShortnameBlueprintFragment         = "blueprint.fragment"
	ShortnameBlueprintFragmentAdvanced = "blueprint.fragment.advanced"
)

const blueprintCategory = 14

// ApplyFixups overrides the display name and category of the known
// blueprint fragment shortnames. All other records pass through unchanged.
func ApplyFixups(r *ItemRecord) {
	switch r.Shortname {
	case ShortnameBlueprintFragment:
		r.DisplayName = "Basic Blueprint Fragment"
		r.CategoryID = intPtr(blueprintCategory)
	case ShortnameBlueprintFragmentAdvanced:
		r.DisplayName = "Advanced Blueprint Fragment"
		r.CategoryID = intPtr(blueprintCategory)
	default:
		return
	}
	r.CategoryName = CategoryName(r.CategoryID)
}
