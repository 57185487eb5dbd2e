package signup

import "time"

// Update carries the fields of a submitted sign-up. ManualWaitlist is a
// pointer so an omitted flag can be told apart from an explicit false.
type Update struct {
	ID             string
	Name           string
	Money          float64
	Date           string
	Paid           bool
	Team           Team
	Goalkeeper     bool
	TeamOverridden bool
	ManualWaitlist *bool
	VenmoName      string
}

// Reconcile merges an incoming update over the stored record.
//
//	id, name, money, date, paid, team,
//	goalkeeper, teamOverridden          incoming overwrites
//	manualWaitlist                      incoming when provided, else preserved
//	venmoName                           incoming when non-empty, else preserved
//	createdAt                           preserved when present, else now
//	paidAt                              now on first paid, preserved while paid, cleared when unpaid
//	lastEditedAt                        always now
func Reconcile(existing *Record, incoming Update, now time.Time) Record {
	stamp := FormatMillis(now.UnixMilli())

	out := Record{
		ID:             incoming.ID,
		Name:           incoming.Name,
		Money:          incoming.Money,
		Date:           incoming.Date,
		Paid:           incoming.Paid,
		Team:           incoming.Team,
		Goalkeeper:     incoming.Goalkeeper,
		TeamOverridden: incoming.TeamOverridden,
		VenmoName:      incoming.VenmoName,
		CreatedAt:      stamp,
		LastEditedAt:   stamp,
	}
	if incoming.ManualWaitlist != nil {
		out.ManualWaitlist = *incoming.ManualWaitlist
	}

	if existing != nil {
		if incoming.ManualWaitlist == nil {
			out.ManualWaitlist = existing.ManualWaitlist
		}
		if out.VenmoName == "" {
			out.VenmoName = existing.VenmoName
		}
		if existing.CreatedAt != "" {
			out.CreatedAt = existing.CreatedAt
		}
	}

	switch {
	case !out.Paid:
		out.PaidAt = ""
	case existing != nil && existing.Paid && existing.PaidAt != "":
		out.PaidAt = existing.PaidAt
	default:
		out.PaidAt = stamp
	}

	return out
}
