package payroll

import "github.com/cmlabs-hris/timecard-payroll-go/internal/domain/payroll"

// ResolveBreakMinutes applies the single-tier break policy to a raw
// (not yet break-adjusted) shift span.
func ResolveBreakMinutes(startHour, startMinute, endHour, endMinute string, policy payroll.BreakPolicy) int {
	if policy.ThresholdMinutes <= 0 {
		return 0
	}
	if ElapsedMinutes(startHour, startMinute, endHour, endMinute) >= policy.ThresholdMinutes {
		return policy.DeductionMinutes
	}
	return 0
}

// ApplyBreakPolicy returns a copy of shifts with break minutes recomputed for
// every shift that was not edited by hand.
func ApplyBreakPolicy(shifts []payroll.Shift, policy payroll.BreakPolicy) []payroll.Shift {
	out := make([]payroll.Shift, len(shifts))
	for i, s := range shifts {
		if !s.IsBreakManual {
			s.BreakMinutes = ResolveBreakMinutes(s.StartHour, s.StartMinute, s.EndHour, s.EndMinute, policy)
		}
		out[i] = s
	}
	return out
}

// EditShift applies a user edit. Setting break minutes pins them; changing the
// times of an unpinned shift re-resolves its break.
func EditShift(s payroll.Shift, edit payroll.ShiftEdit, policy payroll.BreakPolicy) payroll.Shift {
	timesChanged := false
	if edit.Name != nil {
		s.Name = *edit.Name
	}
	if edit.Day != nil {
		s.Day = *edit.Day
	}
	if edit.StartHour != nil {
		s.StartHour = *edit.StartHour
		timesChanged = true
	}
	if edit.StartMinute != nil {
		s.StartMinute = *edit.StartMinute
		timesChanged = true
	}
	if edit.EndHour != nil {
		s.EndHour = *edit.EndHour
		timesChanged = true
	}
	if edit.EndMinute != nil {
		s.EndMinute = *edit.EndMinute
		timesChanged = true
	}
	if edit.IsPaidBreak != nil {
		s.IsPaidBreak = *edit.IsPaidBreak
	}

	if edit.BreakMinutes != nil {
		s.BreakMinutes = *edit.BreakMinutes
		s.IsBreakManual = true
	} else if timesChanged && !s.IsBreakManual {
		s.BreakMinutes = ResolveBreakMinutes(s.StartHour, s.StartMinute, s.EndHour, s.EndMinute, policy)
	}
	return s
}

// ShiftDurationMinutes is the paid length of a shift: the wrapped span minus
// its break, never below zero. Paid breaks are subtracted as well.
func ShiftDurationMinutes(s payroll.Shift) int {
	d := ElapsedMinutes(s.StartHour, s.StartMinute, s.EndHour, s.EndMinute) - s.BreakMinutes
	if d < 0 {
		return 0
	}
	return d
}
