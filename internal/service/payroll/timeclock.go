package payroll

import (
	"strconv"
	"strings"
)

const (
	minutesPerHour = 60
	minutesPerDay  = 24 * minutesPerHour
)

// LenientAtoi reads the leading integer of a form field the way partially
// filled attendance rows are entered: surrounding text is ignored and an empty
// or unparseable value yields 0. It never fails.
func LenientAtoi(s string) int {
	s = strings.TrimLeft(s, " \t\r\n")
	if s == "" {
		return 0
	}

	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			break
		}
		if n > (1<<31)/10 {
			break
		}
		n = n*10 + int(c-'0')
	}
	if neg {
		return -n
	}
	return n
}

// StrictAtoi is the validating counterpart of LenientAtoi.
func StrictAtoi(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return n, true
}

// MinuteOfDay converts an hour/minute pair into minutes since midnight.
func MinuteOfDay(hour, minute string) int {
	return LenientAtoi(hour)*minutesPerHour + LenientAtoi(minute)
}

// ElapsedMinutes returns end minus start. An end before the start is taken to
// be on the next calendar day.
func ElapsedMinutes(startHour, startMinute, endHour, endMinute string) int {
	start := MinuteOfDay(startHour, startMinute)
	end := MinuteOfDay(endHour, endMinute)
	if end < start {
		end += minutesPerDay
	}
	return end - start
}
