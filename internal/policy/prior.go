package policy

import (
	"github.com/Shiftrdw/hukm-scheduling/internal/catalog"
	"github.com/Shiftrdw/hukm-scheduling/internal/domain"
	"github.com/Shiftrdw/hukm-scheduling/internal/store"
)

// PinPriorRoster pins every prior-period fact verbatim into the store as a
// hard-forced-true variable, then hard-zeros every other duty, leave, and
// off-day variable for that worker and date — invariant 5: prior-period
// history (the 14-day lookback) is immutable and fully determined, the
// same exclusivity invariant applied retroactively (spec §4.1), so the
// rule encoders see a settled prior day rather than a freshly-unconstrained
// Boolean for every slot the pinned fact didn't name. Grounded on
// init_previous_roster_model / build_previous_roster.
func PinPriorRoster(st *store.Store, cat *catalog.Catalog, prior []domain.PriorTimeslot, offDayIDs []string) {
	for _, t := range prior {
		st.EnsurePriorVars(t)
		date := domain.NormalizeDate(t.Date)
		pinnedDuty := t.Kind != domain.TimeslotLeave

		for _, duty := range cat.Duties {
			if pinnedDuty && string(duty.ID) == t.SlotID {
				continue
			}
			st.ForceZero(store.Key{Worker: t.Worker, Date: date, Kind: store.SlotDuty, SlotID: string(duty.ID)})
		}
		for _, leave := range cat.Leaves {
			if !pinnedDuty && string(leave.ID) == t.SlotID {
				continue
			}
			st.ForceZero(store.Key{Worker: t.Worker, Date: date, Kind: store.SlotLeave, SlotID: string(leave.ID)})
		}
		for _, offDayID := range offDayIDs {
			st.ForceZero(store.Key{Worker: t.Worker, Date: date, Kind: store.SlotOffDay, SlotID: offDayID})
		}
	}
}

// ApplySelectedRosterOverrides force-zeros every duty or leave variable
// (per the override's Kind) for the override's worker and date — used to
// exclude previously-accepted assignments from a re-solve. The original
// calls use_current_selected_roster twice (once before rule application,
// once after); internal/roster.Build preserves that by invoking this
// function at both points rather than collapsing it to a single call, per
// §3.6's documented double-apply.
func ApplySelectedRosterOverrides(st *store.Store, cat *catalog.Catalog, overrides []domain.SelectedRosterOverride) {
	for _, o := range overrides {
		switch o.Kind {
		case domain.TimeslotLeave:
			for _, l := range cat.Leaves {
				st.ForceZero(store.Key{Worker: o.Worker, Date: domain.NormalizeDate(o.Date), Kind: store.SlotLeave, SlotID: string(l.ID)})
			}
		default:
			for _, d := range cat.Duties {
				st.ForceZero(store.Key{Worker: o.Worker, Date: domain.NormalizeDate(o.Date), Kind: store.SlotDuty, SlotID: string(d.ID)})
			}
		}
	}
}
