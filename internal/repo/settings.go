package repo

import "github.com/dnoice/workforce-tracker/internal/store"

// SettingsPatch holds a partial settings update; nil fields are left
// untouched so the block is merged, never replaced.
type SettingsPatch struct {
	BusinessName       *string
	DefaultRate        *float64
	Currency           *string
	OvertimeMultiplier *float64
	MaxHoursPerDay     *int
	BreakInterval      *int
	AutoBreak          *bool
	Notifications      *bool
}

func (p SettingsPatch) apply(s *store.Settings) {
	if p.BusinessName != nil {
		s.BusinessName = *p.BusinessName
	}
	if p.DefaultRate != nil {
		s.DefaultRate = *p.DefaultRate
	}
	if p.Currency != nil {
		s.Currency = *p.Currency
	}
	if p.OvertimeMultiplier != nil {
		s.OvertimeMultiplier = *p.OvertimeMultiplier
	}
	if p.MaxHoursPerDay != nil {
		s.MaxHoursPerDay = *p.MaxHoursPerDay
	}
	if p.BreakInterval != nil {
		s.BreakInterval = *p.BreakInterval
	}
	if p.AutoBreak != nil {
		s.AutoBreak = *p.AutoBreak
	}
	if p.Notifications != nil {
		s.Notifications = *p.Notifications
	}
}

func (r *Repository) Settings() (store.Settings, error) {
	doc, err := r.load()
	if err != nil {
		return store.DefaultSettings(), err
	}
	return doc.Settings, nil
}

// UpdateSettings merges the patch into the settings block and persists.
func (r *Repository) UpdateSettings(patch SettingsPatch) (store.Settings, error) {
	doc, err := r.load()
	if err != nil {
		return store.DefaultSettings(), err
	}
	patch.apply(&doc.Settings)
	return doc.Settings, r.store.Save(doc)
}
