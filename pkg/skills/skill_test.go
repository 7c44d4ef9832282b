package skills

import (
	"testing"

	"github.com/matst80/skill-finder/pkg/storage"
	"github.com/matst80/skill-finder/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLocale = Locale{
	"TEXT_CLASS_WARRIOR": "Warrior",
	"TEXT_CLASS_PALADIN": "Paladin",
	"TEXT_CLASS_ARCHER":  "Archer",
	"SKILL_BASH":         "Shield Bash",
	"SKILL_BASH_DESC":    "Deals @150%# damage to $one$ enemy",
	"SKILL_TYPE_ATTACK":  "Attack",
	"SKILL_RAIN":         "Arrow Rain",
	"HERO_LEON":          "Leon",
	"HERO_MAY":           "May",
	"HERO_ODIN":          "Odin",
	"UNLOCK_SPECIFIC":    "Acquired {0}",
	"UNLOCK_SEPARATE":    "Acquired {1} {0}",
}

var testHeroes = []RawHero{
	{Id: "CHA_ODIN", Name: "HERO_ODIN"},
	{Id: "CHA_LEON", Name: "HERO_LEON"},
	{Id: "CHA_MAY", Name: "HERO_MAY"},
}

func testRaw() []RawSkill {
	return []RawSkill{
		{
			Icon: "bash", Name: "SKILL_BASH", Level: 3, Desc: "SKILL_BASH_DESC", SimpleDesc: "SKILL_TYPE_ATTACK",
			Class: "CLA_WARRIOR", Huge: 0.29,
			Cost:   []RawCost{{Type: "GOLD", Value: float64(1200)}, {Type: "honor", Value: float64(5)}},
			Unlock: RawUnlockCondition{Type: "NONE", NextId: "MAX"},
		},
		{
			Icon: "bash", Name: "SKILL_BASH", Level: 2, Desc: "SKILL_BASH_DESC", SimpleDesc: "SKILL_TYPE_ATTACK",
			Class: "CLA_WARRIOR", Huge: -1,
			Unlock: RawUnlockCondition{Type: "SPECIFIC", TypeTarget: "CHA_LEON", TypeText: "UNLOCK_SPECIFIC", NextId: "SK_3"},
		},
		{
			Icon: "rain", Name: "SKILL_RAIN", Level: 1, Class: "CLA_ARCHER", Huge: 0.07,
			Unlock: RawUnlockCondition{Type: "SEPARATE", TypeTarget: "CLA_ARCHER", TypeValue: float64(3), TypeText: "UNLOCK_SEPARATE"},
		},
		{
			Icon: "kof", Name: "SKILL_KOF", Level: 1, Class: "KOF", Huge: 1,
			Unlock: RawUnlockCondition{Type: "SPECIFIC", TypeTargetList: []string{"CHA_MAY", "CHA_ODIN"}, TypeText: "UNLOCK_SPECIFIC", NextId: "MAX"},
		},
		{
			Icon: "holy", Name: "SKILL_HOLY", Level: 1, Class: "CLA_PALADIN",
			Unlock: RawUnlockCondition{Type: "ONLY_HUGE"},
		},
	}
}

func TestNormalizeSkill(t *testing.T) {
	n := NewNormalizer(testLocale, testHeroes)
	s := n.Skill(testRaw()[0])

	assert.Equal(t, "Shield Bash", s.Name)
	assert.Equal(t, "Deals 150% damage to one enemy", s.Description)
	assert.Equal(t, "Attack", s.Type)
	assert.Equal(t, "Gold: 1200, Honor: 5", s.Cost)
	assert.Equal(t, "29%", s.Rate)
	assert.Equal(t, "None", s.UnlockCondition)
	assert.Equal(t, ConditionNone, s.UnlockKind)
	assert.Equal(t, types.TagSet{"Level": "Max", "Class": "Warrior"}, s.Tags)
	assert.Equal(t, "Shield Bash (Lv. 3, Max)", s.Heading())
	assert.Equal(t, "Warrior | Attack | Gold: 1200, Honor: 5 | Rate: 29% | None", s.Summary())
	assert.Equal(t, "Shield Bash3", s.Key())
}

func TestUnlockConditions(t *testing.T) {
	n := NewNormalizer(testLocale, testHeroes)
	got := []string{}
	kinds := []ConditionKind{}
	for _, raw := range testRaw() {
		s := n.Skill(raw)
		got = append(got, s.UnlockCondition)
		kinds = append(kinds, s.UnlockKind)
	}
	assert.Equal(t, []string{
		"None",
		"Acquire Leon",
		"Acquire 3 archers",
		"Acquire Odin, May",
		"Get 'Great Success!'",
	}, got)
	assert.Equal(t, []ConditionKind{
		ConditionNone, ConditionSpecificTarget, ConditionClassQuota, ConditionSpecificTargetList, ConditionHugeOnly,
	}, kinds)

	unknown := ParseUnlockCondition(RawUnlockCondition{Type: "LEGACY"})
	assert.Equal(t, ConditionUnknown, unknown.Kind())
	assert.Equal(t, "null", unknown.Describe(testLocale, n.Heroes))
}

func TestTagsAndRates(t *testing.T) {
	n := NewNormalizer(testLocale, testHeroes)
	raw := testRaw()

	assert.Equal(t, types.TagSet{"Level": "", "Class": "Warrior"}, n.Tags(raw[1]))
	assert.Equal(t, types.TagSet{"Level": "Max", "Class": "KOF"}, n.Tags(raw[3]))
	assert.Equal(t, "-", n.Skill(raw[1]).Rate)
	assert.Equal(t, "7%", n.Skill(raw[2]).Rate)
	assert.Equal(t, "100%", n.Skill(raw[3]).Rate)
	assert.Equal(t, "SKILL_KOF (Lv. 1, Max)", n.Skill(raw[3]).Heading())
	assert.Equal(t, "Arrow Rain (Lv. 1)", n.Skill(raw[2]).Heading())
}

func TestUnknownHeroFallsBackToId(t *testing.T) {
	h := NewHeroes(testLocale, testHeroes)
	assert.Equal(t, "Leon", h.Name("CHA_LEON"))
	assert.Equal(t, "CHA_NOBODY", h.Name("CHA_NOBODY"))
	assert.Equal(t, []string{"Odin", "Leon"}, h.Names([]string{"CHA_LEON", "CHA_NOBODY", "CHA_ODIN"}))
}

func TestCatalogueFiltersSkills(t *testing.T) {
	c := NewCatalogue(testLocale, testHeroes, testRaw())
	assert.Equal(t, 5, c.Len())

	state := types.NewFilterState(c.Schema())
	state.Checkboxes = state.Checkboxes.With(CategoryClass, "Warrior", true)
	got := c.Filter(state)
	require.Len(t, got, 2)
	assert.Equal(t, 3, got[0].Level)
	assert.Equal(t, 2, got[1].Level)

	state.Checkboxes = state.Checkboxes.With(CategoryLevel, LevelMax, true)
	assert.Len(t, c.Filter(state), 1)

	state = types.NewFilterState(c.Schema())
	state.Query = "rain"
	got = c.Filter(state)
	require.Len(t, got, 1)
	assert.Equal(t, "Arrow Rain", got[0].Name)
}

func TestLoadCatalogue(t *testing.T) {
	d := storage.NewDiskStorage(t.TempDir())
	require.NoError(t, d.SaveJson(testRaw(), SkillsFile))
	require.NoError(t, d.SaveGzippedJson(testHeroes, HeroesFile+".gz"))

	c, err := LoadCatalogue(d)
	require.NoError(t, err, "locale is optional")
	assert.Equal(t, "SKILL_BASH", c.Entries()[0].Item.Name)

	require.NoError(t, d.SaveJson(testLocale, LocaleFile))
	c, err = LoadCatalogue(d)
	require.NoError(t, err)
	assert.Equal(t, "Shield Bash", c.Entries()[0].Item.Name)
	assert.Equal(t, "Acquire Odin, May", c.Entries()[3].Item.UnlockCondition)
}

func TestLoadCatalogueMissingSkills(t *testing.T) {
	_, err := LoadCatalogue(storage.NewDiskStorage(t.TempDir()))
	assert.ErrorContains(t, err, "load skills")
}

func TestRateTruncatesWithoutFloatNoise(t *testing.T) {
	assert.Equal(t, "29%", rate(0.29))
	assert.Equal(t, "57%", rate(0.57))
	assert.Equal(t, "99%", rate(0.999))
	assert.Equal(t, "0%", rate(0))
	assert.Equal(t, "-", rate(-1))
}
