package catalog

// CategoryUnknown is the sentinel name for codes outside the category table.
const CategoryUnknown = "Unknown"

// categoryNames maps the game's numeric category codes to display names.
// The table is shared by the prefab extractor and the gamedata loader so
// both sources derive identical category names.
var categoryNames = map[int]string{
	0:  "Weapon",
	1:  "Construction",
	2:  "Items",
	3:  "Resources",
	4:  "Attire",
	5:  "Tool",
	6:  "Medical",
	7:  "Food",
	8:  "Ammunition",
	9:  "Traps",
	10: "Misc",
	13: "Common",
	14: "Component",
	16: "Electrical",
	17: "Fun",
}

// CategoryName returns the display name for a category code pointer.
// A nil code or a code outside the table resolves to CategoryUnknown.
func CategoryName(code *int) string {
	if code == nil {
		return CategoryUnknown
	}
	return CategoryNameFor(*code)
}

// CategoryNameFor returns the display name for a category code.
func CategoryNameFor(code int) string {
	if name, ok := categoryNames[code]; ok {
		return name
	}
	return CategoryUnknown
}
