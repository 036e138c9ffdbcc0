package srs

import "time"

const secondsPerDay = 24 * 60 * 60

// midnightOf returns the Unix timestamp of 00:00 of the day containing ts,
// evaluated in a fixed UTC offset of tzOffsetHours.
func midnightOf(ts int64, tzOffsetHours int) int64 {
	loc := time.FixedZone("user", tzOffsetHours*3600)
	t := time.Unix(ts, 0).In(loc)
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, loc).Unix()
}

// midnightTomorrow returns the Unix timestamp of the next day's midnight
// in the user's timezone.
func midnightTomorrow(ts int64, tzOffsetHours int) int64 {
	return midnightOf(ts, tzOffsetHours) + secondsPerDay
}
