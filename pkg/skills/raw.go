package skills

// RawSkill is one record of the decrypted skill table.
type RawSkill struct {
	Icon       string             `json:"icon"`
	Name       string             `json:"name"`
	Level      int                `json:"level"`
	Desc       string             `json:"desc"`
	SimpleDesc string             `json:"simpledesc"`
	Class      string             `json:"class"`
	Cost       []RawCost          `json:"cost"`
	Huge       float64            `json:"huge"`
	Unlock     RawUnlockCondition `json:"unlockcond"`
}

type RawCost struct {
	Type  string `json:"type"`
	Value any    `json:"value"`
}

type RawUnlockCondition struct {
	Type           string   `json:"type"`
	NextId         string   `json:"next_id"`
	TypeTarget     string   `json:"type_target,omitempty"`
	TypeTargetList []string `json:"type_target_list,omitempty"`
	TypeText       string   `json:"type_text,omitempty"`
	TypeValue      any      `json:"type_value,omitempty"`
}

// RawHero is the part of a character visual record needed to name heroes.
type RawHero struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}
