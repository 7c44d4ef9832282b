package skills

import (
	"fmt"

	"github.com/matst80/skill-finder/pkg/filter"
	"github.com/matst80/skill-finder/pkg/storage"
)

const (
	SkillsFile = "filtered_spskill.json"
	HeroesFile = "filtered_character_visual.json"
	LocaleFile = "locale.json"
)

// DataFiles lists the files a catalogue is built from.
var DataFiles = []string{SkillsFile, HeroesFile, LocaleFile}

// Catalogue is the filterable skill list.
type Catalogue = filter.Catalogue[Skill]

// LoadCatalogue reads the data files from d and builds the catalogue. The
// locale file is optional; without it keys are shown as-is.
func LoadCatalogue(d *storage.DiskStorage) (*Catalogue, error) {
	var raw []RawSkill
	if err := d.Load(&raw, SkillsFile); err != nil {
		return nil, fmt.Errorf("load skills: %w", err)
	}
	var heroes []RawHero
	if err := d.Load(&heroes, HeroesFile); err != nil {
		return nil, fmt.Errorf("load heroes: %w", err)
	}
	locale := Locale{}
	if d.Exists(LocaleFile) {
		if err := d.Load(&locale, LocaleFile); err != nil {
			return nil, fmt.Errorf("load locale: %w", err)
		}
	}
	return NewCatalogue(locale, heroes, raw), nil
}

func NewCatalogue(locale Locale, heroes []RawHero, raw []RawSkill) *Catalogue {
	n := NewNormalizer(locale, heroes)
	return filter.NewCatalogue(Schema(), n.Entries(raw))
}
