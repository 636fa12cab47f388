package domain

import "time"

// ToLocal shifts the instant t forward by loc's UTC offset at t, producing
// the "local representation" the client holds for display and editing. The
// result is a different absolute instant whose UTC clock reading matches the
// local wall clock of the original, the trick the mobile client uses so
// that date pickers show local time while the wire stays in UTC.
//
// The offset is read fresh from loc on every call; conversions must not be
// cached across time because DST transitions change the offset.
//
// A nil loc means time.Local.
func ToLocal(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	_, offset := t.In(loc).Zone()
	return t.Add(time.Duration(offset) * time.Second)
}

// ToUTC inverts ToLocal: given a local representation it recovers the
// original instant, so that ToUTC(ToLocal(x, loc), loc) == x for all x.
//
// The offset that produced t was taken at the original instant, not at t
// itself, and the two can differ when the shift crosses a DST transition.
// ToUTC therefore re-derives the offset at the candidate instant and keeps
// the candidate only if its offset reproduces t.
func ToUTC(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	_, offset := t.In(loc).Zone()
	candidate := t.Add(-time.Duration(offset) * time.Second)

	if _, check := candidate.In(loc).Zone(); check != offset {
		candidate = t.Add(-time.Duration(check) * time.Second)
	}
	return candidate
}
