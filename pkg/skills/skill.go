package skills

import (
	"fmt"
	"math"
	"strings"

	"github.com/matst80/skill-finder/pkg/types"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	CategoryLevel = "Level"
	CategoryClass = "Class"

	LevelMax = "Max"
	ClassKOF = "KOF"
)

// Schema is the checkbox layout of the skill page.
func Schema() *types.FilterSchema {
	return types.NewFilterSchema(
		types.FilterCategory{Name: CategoryLevel, Values: []string{LevelMax}},
		types.FilterCategory{Name: CategoryClass, Values: []string{"Warrior", "Paladin", "Archer", "Hunter", "Wizard", "Priest", ClassKOF}},
	)
}

// Skill is a display-ready skill record.
type Skill struct {
	Image           string        `json:"image"`
	Name            string        `json:"name"`
	Level           int           `json:"level"`
	Description     string        `json:"description"`
	Type            string        `json:"type"`
	Cost            string        `json:"cost"`
	Rate            string        `json:"rate"`
	UnlockCondition string        `json:"unlockCondition"`
	UnlockKind      ConditionKind `json:"unlockKind"`
	Tags            types.TagSet  `json:"filterable"`
}

// Key identifies a skill on the page; names repeat across levels.
func (s Skill) Key() string {
	return fmt.Sprintf("%s%d", s.Name, s.Level)
}

// Heading is the list title, "Name (Lv. 3, Max)".
func (s Skill) Heading() string {
	if level := s.Tags.Get(CategoryLevel); level != "" {
		return fmt.Sprintf("%s (Lv. %d, %s)", s.Name, s.Level, level)
	}
	return fmt.Sprintf("%s (Lv. %d)", s.Name, s.Level)
}

// Summary is the one line detail shown under the heading.
func (s Skill) Summary() string {
	return fmt.Sprintf("%s | %s | %s | Rate: %s | %s", s.Tags.Get(CategoryClass), s.Type, s.Cost, s.Rate, s.UnlockCondition)
}

var descriptionMarkup = strings.NewReplacer("@", "", "#", "", "$", "")

// Normalizer converts raw records using one locale and hero table.
type Normalizer struct {
	Locale Locale
	Heroes *Heroes
	title  cases.Caser
}

func NewNormalizer(locale Locale, heroes []RawHero) *Normalizer {
	return &Normalizer{
		Locale: locale,
		Heroes: NewHeroes(locale, heroes),
		title:  cases.Title(language.English),
	}
}

func (n *Normalizer) Tags(raw RawSkill) types.TagSet {
	level := ""
	if raw.Unlock.NextId == "MAX" {
		level = LevelMax
	}
	class := ClassKOF
	if raw.Class != ClassKOF {
		class = n.Locale.Resolve(classKey(raw.Class))
	}
	return types.TagSet{
		CategoryLevel: level,
		CategoryClass: class,
	}
}

func (n *Normalizer) cost(costs []RawCost) string {
	parts := make([]string, 0, len(costs))
	for _, c := range costs {
		parts = append(parts, fmt.Sprintf("%s: %s", n.title.String(c.Type), formatValue(c.Value)))
	}
	return strings.Join(parts, ", ")
}

// rate renders the huge success chance as a whole percent, "-" when the
// skill has none. The value is truncated after a small epsilon is added, so
// 0.29 shows as 29% where a plain int(0.29*100) gives 28%.
func rate(huge float64) string {
	if huge == -1 {
		return "-"
	}
	return fmt.Sprintf("%d%%", int(math.Floor(huge*100+1e-9)))
}

func (n *Normalizer) Skill(raw RawSkill) Skill {
	condition := ParseUnlockCondition(raw.Unlock)
	return Skill{
		Image:           raw.Icon,
		Name:            n.Locale.Resolve(raw.Name),
		Level:           raw.Level,
		Description:     descriptionMarkup.Replace(n.Locale.Resolve(raw.Desc)),
		Type:            n.Locale.Resolve(raw.SimpleDesc),
		Cost:            n.cost(raw.Cost),
		Rate:            rate(raw.Huge),
		UnlockCondition: condition.Describe(n.Locale, n.Heroes),
		UnlockKind:      condition.Kind(),
		Tags:            n.Tags(raw),
	}
}

// Entries normalizes raw skills in order. Names are the searchable text.
func (n *Normalizer) Entries(raw []RawSkill) []types.Entry[Skill] {
	ret := make([]types.Entry[Skill], 0, len(raw))
	for _, r := range raw {
		s := n.Skill(r)
		ret = append(ret, types.Entry[Skill]{
			Tags: s.Tags,
			Text: s.Name,
			Item: s,
		})
	}
	return ret
}
