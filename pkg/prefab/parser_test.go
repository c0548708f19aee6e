package prefab

import (
	"strings"
	"testing"
)

const fullPrefab = `PrefabName: assets/prefabs/wooden.door.prefab
  m_PathID: 777
  itemid: 12345
  shortname: wooden.door
  displayName:
    english: Wooden Door
  description:
    english: A sturdy wooden door.
  category: 1
  stackable: 10
  volume: 2
  maxDraggable: 3
  isWearable: 0
  isHoldable: 1
  isUsable: False
  hasSkins: True
  ingredients:
  - targetitem: 888
    amount: 300
  - targetitem: 999
    amount: 5
  time: 30
  amountToCreate: 1
  workbenchLevelRequired: 2
`

func TestParse_FullFile(t *testing.T) {
	res := Parse(fullPrefab, "wooden.door.prefab.txt")

	item := res.Item
	if item == nil {
		t.Fatalf("no item extracted, warnings: %v", res.Warnings)
	}
	if item.ItemID != 12345 {
		t.Errorf("ItemID = %d, want 12345", item.ItemID)
	}
	if item.Shortname != "wooden.door" {
		t.Errorf("Shortname = %q, want wooden.door", item.Shortname)
	}
	if item.DisplayName != "Wooden Door" {
		t.Errorf("DisplayName = %q, want Wooden Door", item.DisplayName)
	}
	if item.Description == nil || *item.Description != "A sturdy wooden door." {
		t.Errorf("Description = %v", item.Description)
	}
	if item.CategoryID == nil || *item.CategoryID != 1 {
		t.Errorf("CategoryID = %v, want 1", item.CategoryID)
	}
	if item.CategoryName != "Construction" {
		t.Errorf("CategoryName = %q, want Construction", item.CategoryName)
	}
	if item.Stackable == nil || *item.Stackable != 10 {
		t.Errorf("Stackable = %v, want 10", item.Stackable)
	}
	if item.Volume == nil || *item.Volume != 2 {
		t.Errorf("Volume = %v, want 2", item.Volume)
	}
	if item.MaxDraggable == nil || *item.MaxDraggable != 3 {
		t.Errorf("MaxDraggable = %v, want 3", item.MaxDraggable)
	}
	if item.Wearable == nil || *item.Wearable {
		t.Errorf("Wearable = %v, want false", item.Wearable)
	}
	if item.Holdable == nil || !*item.Holdable {
		t.Errorf("Holdable = %v, want true", item.Holdable)
	}
	if item.Usable == nil || *item.Usable {
		t.Errorf("Usable = %v, want false", item.Usable)
	}
	if item.HasSkins == nil || !*item.HasSkins {
		t.Errorf("HasSkins = %v, want true", item.HasSkins)
	}
	if item.ObjectRef == nil || *item.ObjectRef != 777 {
		t.Errorf("ObjectRef = %v, want 777", item.ObjectRef)
	}

	rec := res.Recipe
	if rec == nil {
		t.Fatalf("no recipe extracted, warnings: %v", res.Warnings)
	}
	if rec.Shortname != "wooden.door" {
		t.Errorf("recipe Shortname = %q, want wooden.door", rec.Shortname)
	}
	if rec.CraftTimeSeconds == nil || *rec.CraftTimeSeconds != 30 {
		t.Errorf("CraftTimeSeconds = %v, want 30", rec.CraftTimeSeconds)
	}
	if rec.OutputQuantity == nil || *rec.OutputQuantity != 1 {
		t.Errorf("OutputQuantity = %v, want 1", rec.OutputQuantity)
	}
	if rec.MinWorkbenchTier == nil || *rec.MinWorkbenchTier != 2 {
		t.Errorf("MinWorkbenchTier = %v, want 2", rec.MinWorkbenchTier)
	}
	if len(rec.Ingredients) != 2 {
		t.Fatalf("got %d ingredients, want 2", len(rec.Ingredients))
	}
	if rec.Ingredients[0].TargetRef != 888 || rec.Ingredients[0].Quantity != 300 {
		t.Errorf("ingredient[0] = %+v, want targetRef 888 quantity 300", rec.Ingredients[0])
	}
	if rec.Ingredients[1].TargetRef != 999 || rec.Ingredients[1].Quantity != 5 {
		t.Errorf("ingredient[1] = %+v, want targetRef 999 quantity 5", rec.Ingredients[1])
	}
}

func TestParse_RequiredItemFields(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing itemid", "shortname: wood\ndisplayName:\n  english: Wood\n"},
		{"missing shortname", "itemid: 1\ndisplayName:\n  english: Wood\n"},
		{"missing display name", "itemid: 1\nshortname: wood\n"},
		{"empty file", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Parse(tt.content, "t.prefab.txt")
			if res.Item != nil {
				t.Errorf("item extracted from incomplete input: %+v", res.Item)
			}
		})
	}
}

func TestParse_MalformedRequiredNumeric(t *testing.T) {
	content := "itemid: not-a-number\nshortname: wood\ndisplayName:\n  english: Wood\n"
	res := Parse(content, "t.prefab.txt")

	if res.Item != nil {
		t.Errorf("item extracted despite malformed itemid: %+v", res.Item)
	}
	if len(res.Warnings) == 0 {
		t.Error("no warning for malformed itemid")
	}
}

func TestParse_MalformedOptionalDropsField(t *testing.T) {
	content := "itemid: 7\nshortname: wood\ndisplayName:\n  english: Wood\nvolume: banana\nstackable: 50\n"
	res := Parse(content, "t.prefab.txt")

	if res.Item == nil {
		t.Fatalf("item dropped because of a malformed optional field, warnings: %v", res.Warnings)
	}
	if res.Item.Volume != nil {
		t.Errorf("Volume = %v, want nil for malformed value", res.Item.Volume)
	}
	if res.Item.Stackable == nil || *res.Item.Stackable != 50 {
		t.Errorf("Stackable = %v, want 50", res.Item.Stackable)
	}
	if len(res.Warnings) == 0 {
		t.Error("no warning for malformed volume")
	}
}

func TestParse_NestedBlockBoundary(t *testing.T) {
	// The english marker after the block (same indent as displayName) must
	// not be picked up as the display name.
	content := "itemid: 7\nshortname: wood\ndisplayName:\ncategory: 3\nenglish: Stray\n"
	res := Parse(content, "t.prefab.txt")

	if res.Item != nil {
		t.Errorf("item extracted despite empty display block: %+v", res.Item)
	}
}

func TestParse_RecipeRequiredFields(t *testing.T) {
	base := "shortname: torch\n"
	tests := []struct {
		name    string
		content string
	}{
		{"no ingredients marker", base + "time: 10\namountToCreate: 1\n"},
		{"no time", base + "ingredients:\n- targetitem: 1\n  amount: 2\namountToCreate: 1\n"},
		{"no amountToCreate", base + "ingredients:\n- targetitem: 1\n  amount: 2\ntime: 10\n"},
		{"no shortname", "ingredients:\n- targetitem: 1\n  amount: 2\ntime: 10\namountToCreate: 1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Parse(tt.content, "t.prefab.txt")
			if res.Recipe != nil {
				t.Errorf("recipe extracted from incomplete input: %+v", res.Recipe)
			}
		})
	}
}

func TestParse_RecipeOnlyFile(t *testing.T) {
	content := "shortname: torch\ningredients:\n- targetitem: 5\n  amount: 2\ntime: 10\namountToCreate: 1\n"
	res := Parse(content, "t.prefab.txt")

	if res.Item != nil {
		t.Errorf("unexpected item: %+v", res.Item)
	}
	if res.Recipe == nil {
		t.Fatalf("no recipe extracted, warnings: %v", res.Warnings)
	}
	if res.Recipe.MinWorkbenchTier != nil {
		t.Errorf("MinWorkbenchTier = %v, want nil when absent", res.Recipe.MinWorkbenchTier)
	}
}

func TestParse_IngredientPairing(t *testing.T) {
	tests := []struct {
		name      string
		block     string
		wantCount int
		wantWarn  bool
	}{
		{
			name:      "unpaired trailing target skipped",
			block:     "- targetitem: 1\n  amount: 2\n- targetitem: 3\n",
			wantCount: 1,
			wantWarn:  true,
		},
		{
			name:      "zero amount skipped",
			block:     "- targetitem: 1\n  amount: 0\n",
			wantCount: 0,
			wantWarn:  true,
		},
		{
			name:      "negative amount skipped",
			block:     "- targetitem: 1\n  amount: -4\n",
			wantCount: 0,
			wantWarn:  true,
		},
		{
			name:      "malformed target skipped",
			block:     "- targetitem: abc\n  amount: 2\n",
			wantCount: 0,
			wantWarn:  true,
		},
		{
			name:      "amount before target not paired backwards",
			block:     "  amount: 2\n- targetitem: 1\n",
			wantCount: 0,
			wantWarn:  true,
		},
		{
			name:      "each amount consumed once",
			block:     "- targetitem: 1\n- targetitem: 2\n  amount: 9\n",
			wantCount: 1,
			wantWarn:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := "shortname: torch\ningredients:\n" + tt.block + "time: 10\namountToCreate: 1\n"
			res := Parse(content, "t.prefab.txt")

			if res.Recipe == nil {
				t.Fatalf("no recipe extracted, warnings: %v", res.Warnings)
			}
			if got := len(res.Recipe.Ingredients); got != tt.wantCount {
				t.Errorf("got %d ingredients, want %d (%v)", got, tt.wantCount, res.Recipe.Ingredients)
			}
			if tt.wantWarn && len(res.Warnings) == 0 {
				t.Error("expected a warning, got none")
			}
		})
	}
}

func TestParse_BlueprintFixup(t *testing.T) {
	content := "itemid: 50\nshortname: blueprint.fragment\ndisplayName:\n  english: PLACEHOLDER\ncategory: 2\n"
	res := Parse(content, "blueprint.fragment.prefab.txt")

	if res.Item == nil {
		t.Fatalf("no item extracted, warnings: %v", res.Warnings)
	}
	if res.Item.DisplayName != "Basic Blueprint Fragment" {
		t.Errorf("DisplayName = %q, want fixed name", res.Item.DisplayName)
	}
	if res.Item.CategoryID == nil || *res.Item.CategoryID != 14 {
		t.Errorf("CategoryID = %v, want 14", res.Item.CategoryID)
	}
	if res.Item.CategoryName != "Component" {
		t.Errorf("CategoryName = %q, want Component", res.Item.CategoryName)
	}
}

func TestParse_FirstOccurrenceWins(t *testing.T) {
	content := "m_PathID: 11\nitemid: 1\nm_PathID: 22\nshortname: wood\ndisplayName:\n  english: Wood\n"
	res := Parse(content, "t.prefab.txt")

	if res.Item == nil {
		t.Fatal("no item extracted")
	}
	if res.Item.ObjectRef == nil || *res.Item.ObjectRef != 11 {
		t.Errorf("ObjectRef = %v, want first occurrence 11", res.Item.ObjectRef)
	}
}

func TestParse_CRLFInput(t *testing.T) {
	content := strings.ReplaceAll("itemid: 9\nshortname: rock\ndisplayName:\n  english: Rock\n", "\n", "\r\n")
	res := Parse(content, "rock.prefab.txt")

	if res.Item == nil {
		t.Fatalf("no item extracted from CRLF input, warnings: %v", res.Warnings)
	}
	if res.Item.DisplayName != "Rock" {
		t.Errorf("DisplayName = %q, want Rock", res.Item.DisplayName)
	}
}
