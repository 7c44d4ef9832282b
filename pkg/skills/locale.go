package skills

// Locale is a localized string table. Keys without a translation resolve to
// themselves.
type Locale map[string]string

func (l Locale) Resolve(key string) string {
	if text, ok := l[key]; ok {
		return text
	}
	return key
}

// Heroes resolves hero ids to their localized names, keeping the order of
// the hero table.
type Heroes struct {
	locale Locale
	order  []string
	names  map[string]string
}

func NewHeroes(locale Locale, raw []RawHero) *Heroes {
	h := &Heroes{
		locale: locale,
		order:  make([]string, 0, len(raw)),
		names:  make(map[string]string, len(raw)),
	}
	for _, r := range raw {
		if _, ok := h.names[r.Id]; ok {
			continue
		}
		h.order = append(h.order, r.Id)
		h.names[r.Id] = r.Name
	}
	return h
}

// Name returns the localized name of id, or id when the hero is unknown.
func (h *Heroes) Name(id string) string {
	if key, ok := h.names[id]; ok {
		return h.locale.Resolve(key)
	}
	return id
}

// Names returns the localized names of the known heroes in ids, in hero
// table order.
func (h *Heroes) Names(ids []string) []string {
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	ret := make([]string, 0, len(ids))
	for _, id := range h.order {
		if _, ok := wanted[id]; ok {
			ret = append(ret, h.locale.Resolve(h.names[id]))
		}
	}
	return ret
}
