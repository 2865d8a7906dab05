package models

// PlannedDays maps a date (YYYY-MM-DD) to the template items frozen for that
// day. A present key with an empty list is a day whose plan was cleared.
type PlannedDays map[string][]TemplateItem

// Clone returns a deep copy.
func (p PlannedDays) Clone() PlannedDays {
	out := make(PlannedDays, len(p))
	for date, items := range p {
		out[date] = CloneTemplate(items)
	}
	return out
}

// For returns the snapshot for date and whether the date was planned.
func (p PlannedDays) For(date string) ([]TemplateItem, bool) {
	items, ok := p[date]
	return items, ok
}
