package skills

import (
	"fmt"
	"strconv"
	"strings"
)

type ConditionKind string

const (
	ConditionNone               ConditionKind = "none"
	ConditionSpecificTarget     ConditionKind = "specific_target"
	ConditionSpecificTargetList ConditionKind = "specific_target_list"
	ConditionClassQuota         ConditionKind = "class_quota"
	ConditionHugeOnly           ConditionKind = "huge_only"
	ConditionUnknown            ConditionKind = "unknown"
)

// UnlockCondition is what the player has to do before a skill can be
// learned.
type UnlockCondition interface {
	Kind() ConditionKind
	Describe(locale Locale, heroes *Heroes) string
}

type NoCondition struct{}

// SpecificTarget requires acquiring one hero.
type SpecificTarget struct {
	Text   string
	HeroId string
}

// SpecificTargetList requires acquiring every listed hero.
type SpecificTargetList struct {
	Text    string
	HeroIds []string
}

// ClassQuota requires acquiring Count heroes of a class.
type ClassQuota struct {
	Text  string
	Class string
	Count string
}

// HugeOnly requires landing a great success.
type HugeOnly struct{}

// UnknownCondition keeps the raw type of records that could not be parsed.
type UnknownCondition struct {
	Type string
}

func (NoCondition) Kind() ConditionKind        { return ConditionNone }
func (SpecificTarget) Kind() ConditionKind     { return ConditionSpecificTarget }
func (SpecificTargetList) Kind() ConditionKind { return ConditionSpecificTargetList }
func (ClassQuota) Kind() ConditionKind         { return ConditionClassQuota }
func (HugeOnly) Kind() ConditionKind           { return ConditionHugeOnly }
func (UnknownCondition) Kind() ConditionKind   { return ConditionUnknown }

func (NoCondition) Describe(Locale, *Heroes) string {
	return "None"
}

func (c SpecificTarget) Describe(locale Locale, heroes *Heroes) string {
	return fillAcquire(locale.Resolve(c.Text), "{0}", heroes.Name(c.HeroId))
}

func (c SpecificTargetList) Describe(locale Locale, heroes *Heroes) string {
	return fillAcquire(locale.Resolve(c.Text), "{0}", strings.Join(heroes.Names(c.HeroIds), ", "))
}

func (c ClassQuota) Describe(locale Locale, _ *Heroes) string {
	text := fillAcquire(locale.Resolve(c.Text), "{1}", c.Count)
	className := strings.ToLower(locale.Resolve(classKey(c.Class))) + "s"
	return strings.Replace(text, "{0}", className, 1)
}

func (HugeOnly) Describe(Locale, *Heroes) string {
	return "Get 'Great Success!'"
}

func (UnknownCondition) Describe(Locale, *Heroes) string {
	return "null"
}

// the localized texts are past tense, the page shows them as instructions
func fillAcquire(text, placeholder, value string) string {
	text = strings.Replace(text, "Acquired", "Acquire", 1)
	return strings.Replace(text, placeholder, value, 1)
}

// ParseUnlockCondition maps a raw condition to its variant.
func ParseUnlockCondition(raw RawUnlockCondition) UnlockCondition {
	switch raw.Type {
	case "NONE":
		return NoCondition{}
	case "SPECIFIC":
		if raw.TypeTarget != "" {
			return SpecificTarget{Text: raw.TypeText, HeroId: raw.TypeTarget}
		}
		return SpecificTargetList{Text: raw.TypeText, HeroIds: raw.TypeTargetList}
	case "SEPARATE":
		return ClassQuota{Text: raw.TypeText, Class: raw.TypeTarget, Count: formatValue(raw.TypeValue)}
	case "ONLY_HUGE":
		return HugeOnly{}
	}
	return UnknownCondition{Type: raw.Type}
}

func formatValue(v any) string {
	switch typed := v.(type) {
	case nil:
		return ""
	case string:
		return typed
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	}
	return fmt.Sprint(v)
}

// classKey turns a class id like CLA_WARRIOR into its locale key.
func classKey(class string) string {
	return "TEXT_CLASS_" + classSuffix(class)
}

func classSuffix(class string) string {
	if len(class) <= 4 {
		return ""
	}
	return class[4:]
}
