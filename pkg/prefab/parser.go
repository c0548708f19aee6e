package prefab

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/lootdex/lootdex/pkg/catalog"
)

// Result holds the records extracted from a single description file.
// A file may yield an item definition, a recipe, both, or neither.
type Result struct {
	Source   string // source file name, for provenance
	Item     *catalog.ItemRecord
	Recipe   *catalog.RecipeRecord
	Warnings []string // per-field conditions worth reporting upstream
}

// Field marker patterns. Values are captured loosely and converted with
// strconv so a malformed number downgrades the record instead of being
// silently unmatched.
var (
	reItemID         = regexp.MustCompile(`^\s*itemid:\s*(.+?)\s*$`)
	reShortname      = regexp.MustCompile(`^\s*shortname:\s*(\S+)`)
	reDisplayName    = regexp.MustCompile(`^(\s*)displayName:\s*$`)
	reDescription    = regexp.MustCompile(`^(\s*)description:\s*$`)
	reEnglish        = regexp.MustCompile(`^\s*english:\s*(.+?)\s*$`)
	reCategory       = regexp.MustCompile(`^\s*category:\s*(.+?)\s*$`)
	reStackable      = regexp.MustCompile(`^\s*stackable:\s*(.+?)\s*$`)
	reVolume         = regexp.MustCompile(`^\s*volume:\s*(.+?)\s*$`)
	reMaxDraggable   = regexp.MustCompile(`^\s*maxDraggable:\s*(.+?)\s*$`)
	reWearable       = regexp.MustCompile(`^\s*isWearable:\s*(\S+)`)
	reHoldable       = regexp.MustCompile(`^\s*isHoldable:\s*(\S+)`)
	reUsable         = regexp.MustCompile(`^\s*isUsable:\s*(\S+)`)
	reHasSkins       = regexp.MustCompile(`^\s*hasSkins:\s*(\S+)`)
	rePathID         = regexp.MustCompile(`^\s*m_PathID:\s*(.+?)\s*$`)
	reIngredients    = regexp.MustCompile(`^\s*ingredients:`)
	reTargetItem     = regexp.MustCompile(`^\s*(?:-\s*)?targetitem:\s*(.+?)\s*$`)
	reAmount         = regexp.MustCompile(`^\s*(?:-\s*)?amount:\s*(.+?)\s*$`)
	reCraftTime      = regexp.MustCompile(`^\s*time:\s*(.+?)\s*$`)
	reAmountToCreate = regexp.MustCompile(`^\s*amountToCreate:\s*(.+?)\s*$`)
	reWorkbench      = regexp.MustCompile(`^\s*workbenchLevelRequired:\s*(.+?)\s*$`)
)

// Parse extracts records from the raw text of one description file.
//
// An item record is emitted only when itemid, shortname, and the nested
// english display name are all present and well-formed. A recipe record is
// emitted only when the ingredients marker, the time field, and the
// amountToCreate field are all present and well-formed (plus a shortname to
// join on). Everything else is optional; malformed optional values are
// dropped field-wise with a warning, and a malformed required value makes
// the whole record absent. Parse never fails: the worst input yields an
// empty Result with warnings.
func Parse(content, source string) Result {
	lines := splitLines(content)
	res := Result{Source: source}

	f := scanFields(lines)

	res.Item = buildItem(f, &res)
	res.Recipe = buildRecipe(f, &res)

	return res
}

// fields holds the raw marker captures from one file.
type fields struct {
	itemID      string
	hasItemID   bool
	shortname   string
	displayName string
	hasDisplay  bool
	description string
	hasDesc     bool

	category     string
	hasCategory  bool
	stackable    string
	hasStackable bool
	volume       string
	hasVolume    bool
	maxDrag      string
	hasMaxDrag   bool

	wearable string
	holdable string
	usable   string
	hasSkins string

	pathID    string
	hasPathID bool

	hasIngredients bool
	craftTime      string
	hasCraftTime   bool
	amountToCreate string
	hasAmount      bool
	workbench      string
	hasWorkbench   bool

	targetLines []markerLine
	amountLines []markerLine
}

// markerLine pairs a captured value with the line it appeared on, for the
// positional ingredient/amount pairing scan.
type markerLine struct {
	line  int
	value string
}

func scanFields(lines []string) *fields {
	f := &fields{}

	for i, line := range lines {
		switch {
		case !f.hasItemID && reItemID.MatchString(line):
			f.itemID = reItemID.FindStringSubmatch(line)[1]
			f.hasItemID = true
		case f.shortname == "" && reShortname.MatchString(line):
			f.shortname = reShortname.FindStringSubmatch(line)[1]
		case !f.hasDisplay && reDisplayName.MatchString(line):
			indent := len(reDisplayName.FindStringSubmatch(line)[1])
			if v, ok := nestedEnglish(lines, i, indent); ok {
				f.displayName = v
				f.hasDisplay = true
			}
		case !f.hasDesc && reDescription.MatchString(line):
			indent := len(reDescription.FindStringSubmatch(line)[1])
			if v, ok := nestedEnglish(lines, i, indent); ok {
				f.description = v
				f.hasDesc = true
			}
		case !f.hasCategory && reCategory.MatchString(line):
			f.category = reCategory.FindStringSubmatch(line)[1]
			f.hasCategory = true
		case !f.hasStackable && reStackable.MatchString(line):
			f.stackable = reStackable.FindStringSubmatch(line)[1]
			f.hasStackable = true
		case !f.hasVolume && reVolume.MatchString(line):
			f.volume = reVolume.FindStringSubmatch(line)[1]
			f.hasVolume = true
		case !f.hasMaxDrag && reMaxDraggable.MatchString(line):
			f.maxDrag = reMaxDraggable.FindStringSubmatch(line)[1]
			f.hasMaxDrag = true
		case f.wearable == "" && reWearable.MatchString(line):
			f.wearable = reWearable.FindStringSubmatch(line)[1]
		case f.holdable == "" && reHoldable.MatchString(line):
			f.holdable = reHoldable.FindStringSubmatch(line)[1]
		case f.usable == "" && reUsable.MatchString(line):
			f.usable = reUsable.FindStringSubmatch(line)[1]
		case f.hasSkins == "" && reHasSkins.MatchString(line):
			f.hasSkins = reHasSkins.FindStringSubmatch(line)[1]
		case !f.hasPathID && rePathID.MatchString(line):
			// First occurrence belongs to the item's authoring block.
			f.pathID = rePathID.FindStringSubmatch(line)[1]
			f.hasPathID = true
		case reIngredients.MatchString(line):
			f.hasIngredients = true
		case reTargetItem.MatchString(line):
			f.targetLines = append(f.targetLines, markerLine{i, reTargetItem.FindStringSubmatch(line)[1]})
		case reAmount.MatchString(line):
			f.amountLines = append(f.amountLines, markerLine{i, reAmount.FindStringSubmatch(line)[1]})
		case !f.hasCraftTime && reCraftTime.MatchString(line):
			f.craftTime = reCraftTime.FindStringSubmatch(line)[1]
			f.hasCraftTime = true
		case !f.hasAmount && reAmountToCreate.MatchString(line):
			f.amountToCreate = reAmountToCreate.FindStringSubmatch(line)[1]
			f.hasAmount = true
		case !f.hasWorkbench && reWorkbench.MatchString(line):
			f.workbench = reWorkbench.FindStringSubmatch(line)[1]
			f.hasWorkbench = true
		}
	}

	return f
}

// nestedEnglish finds the first english marker inside the nested block that
// follows the marker at line idx with the given indent. The block ends at
// the first non-blank line indented at or below the marker itself.
func nestedEnglish(lines []string, idx, indent int) (string, bool) {
	for j := idx + 1; j < len(lines); j++ {
		line := lines[j]
		if strings.TrimSpace(line) == "" {
			continue
		}
		if lineIndent(line) <= indent {
			return "", false
		}
		if m := reEnglish.FindStringSubmatch(line); m != nil {
			return m[1], true
		}
	}
	return "", false
}

func buildItem(f *fields, res *Result) *catalog.ItemRecord {
	if !f.hasItemID || f.shortname == "" || !f.hasDisplay {
		return nil
	}

	itemID, err := strconv.Atoi(f.itemID)
	if err != nil {
		res.warnf("malformed itemid %q", f.itemID)
		return nil
	}

	item := &catalog.ItemRecord{
		ItemID:      itemID,
		Shortname:   f.shortname,
		DisplayName: f.displayName,
		Origin:      catalog.OriginPrefab,
	}

	if f.hasDesc {
		desc := f.description
		item.Description = &desc
	}
	if f.hasCategory {
		item.CategoryID = parseOptionalInt(f.category, "category", res)
	}
	if f.hasStackable {
		item.Stackable = parseOptionalInt(f.stackable, "stackable", res)
	}
	if f.hasVolume {
		item.Volume = parseOptionalInt(f.volume, "volume", res)
	}
	if f.hasMaxDrag {
		item.MaxDraggable = parseOptionalInt(f.maxDrag, "maxDraggable", res)
	}
	if f.wearable != "" {
		item.Wearable = parseFlag(f.wearable)
	}
	if f.holdable != "" {
		item.Holdable = parseFlag(f.holdable)
	}
	if f.usable != "" {
		item.Usable = parseFlag(f.usable)
	}
	if f.hasSkins != "" {
		item.HasSkins = parseFlag(f.hasSkins)
	}
	if f.hasPathID {
		if ref, err := strconv.ParseInt(f.pathID, 10, 64); err == nil {
			item.ObjectRef = &ref
		} else {
			res.warnf("malformed m_PathID %q", f.pathID)
		}
	}

	item.CategoryName = catalog.CategoryName(item.CategoryID)
	catalog.ApplyFixups(item)
	return item
}

func buildRecipe(f *fields, res *Result) *catalog.RecipeRecord {
	if !f.hasIngredients || !f.hasCraftTime || !f.hasAmount {
		return nil
	}
	if f.shortname == "" {
		res.warnf("recipe markers present but no shortname to join on")
		return nil
	}

	craftTime, err := strconv.ParseFloat(f.craftTime, 64)
	if err != nil {
		res.warnf("malformed time %q", f.craftTime)
		return nil
	}
	output, err := strconv.Atoi(f.amountToCreate)
	if err != nil {
		res.warnf("malformed amountToCreate %q", f.amountToCreate)
		return nil
	}

	rec := &catalog.RecipeRecord{
		Shortname:        f.shortname,
		CraftTimeSeconds: &craftTime,
		OutputQuantity:   &output,
		Ingredients:      pairIngredients(f, res),
	}
	if f.hasWorkbench {
		rec.MinWorkbenchTier = parseOptionalInt(f.workbench, "workbenchLevelRequired", res)
	}

	return rec
}

// pairIngredients performs the positional paired scan over ordered marker
// matches: each targetitem reference takes the nearest following, not yet
// consumed, amount field. A reference with no paired amount is skipped —
// this mirrors the source format's behavior and is reported as a warning so
// the undercount is visible.
func pairIngredients(f *fields, res *Result) []catalog.IngredientRef {
	ings := make([]catalog.IngredientRef, 0, len(f.targetLines))
	next := 0

	for _, target := range f.targetLines {
		ref, err := strconv.ParseInt(target.value, 10, 64)
		if err != nil {
			res.warnf("malformed targetitem %q", target.value)
			continue
		}

		pairedAt := -1
		for j := next; j < len(f.amountLines); j++ {
			if f.amountLines[j].line > target.line {
				pairedAt = j
				break
			}
		}
		if pairedAt < 0 {
			res.warnf("ingredient %d has no paired amount, skipped", ref)
			continue
		}
		next = pairedAt + 1

		qty, err := strconv.Atoi(f.amountLines[pairedAt].value)
		if err != nil || qty <= 0 {
			res.warnf("ingredient %d has invalid amount %q, skipped", ref, f.amountLines[pairedAt].value)
			continue
		}

		ings = append(ings, catalog.IngredientRef{Quantity: qty, TargetRef: ref})
	}

	return ings
}

func parseOptionalInt(raw, field string, res *Result) *int {
	v, err := strconv.Atoi(raw)
	if err != nil {
		res.warnf("malformed %s %q", field, raw)
		return nil
	}
	return &v
}

func parseFlag(raw string) *bool {
	v := raw == "1" || strings.EqualFold(raw, "true")
	return &v
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func splitLines(content string) []string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
	}
	return lines
}

func lineIndent(line string) int {
	n := 0
	for _, r := range line {
		if r != ' ' && r != '\t' {
			break
		}
		n++
	}
	return n
}
