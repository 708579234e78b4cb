// Package datekey maps calendar dates to dense, order-preserving integer keys.
//
// A key packs a date as year*10000 + month*100 + day, so 2012-06-30 becomes
// 20120630. Key order matches date order, which lets series store and compare
// dates as plain integers. Only years in [0, 9999] pack normally; the two
// open-ended extremes MinDate and MaxDate are reserved sentinels that map to
// MinKey and MaxKey.
//
// Other subsystems may exchange raw keys instead of decoded dates: every key
// produced by Encode is accepted by Decode and Validate, and vice versa.
package datekey

import (
	"cmp"
	"fmt"
	"math"
	"time"

	"github.com/arloliu/datets/errs"
)

const (
	// MinKey is the sentinel key for MinDate.
	MinKey = math.MinInt32
	// MaxKey is the sentinel key for MaxDate.
	MaxKey = math.MaxInt32

	// MinYear and MaxYear bound the years that pack into a regular key.
	MinYear = 0
	MaxYear = 9999

	// firstKey and lastKey are the smallest and largest regular keys.
	firstKey = 101        // 0000-01-01
	lastKey  = 9999_12_31 // 9999-12-31
)

var (
	// MinDate is the earliest representable date. It stands for an open-ended lower bound.
	MinDate = Date{Year: -999_999_999, Month: time.January, Day: 1}
	// MaxDate is the latest representable date. It stands for an open-ended upper bound.
	MaxDate = Date{Year: 999_999_999, Month: time.December, Day: 31}
)

// daysInMonth is indexed by month; February holds its leap-year length.
var daysInMonth = [13]int{0, 31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// Date is a calendar date without time of day or location.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// Of returns the date for the given year, month and day. It does not validate.
func Of(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// FromTime returns the calendar date of t in t's location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Parse parses a date in YYYY-MM-DD form.
func Parse(s string) (Date, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", errs.ErrInvalidDate, s)
	}

	return FromTime(t), nil
}

// Time returns midnight UTC at the start of d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or after other.
func (d Date) Compare(other Date) int {
	if c := cmp.Compare(d.Year, other.Year); c != 0 {
		return c
	}
	if c := cmp.Compare(d.Month, other.Month); c != 0 {
		return c
	}

	return cmp.Compare(d.Day, other.Day)
}

// Before reports whether d is strictly before other.
func (d Date) Before(other Date) bool {
	return d.Compare(other) < 0
}

// After reports whether d is strictly after other.
func (d Date) After(other Date) bool {
	return d.Compare(other) > 0
}

// String formats d as YYYY-MM-DD. Years beyond four digits carry an explicit sign.
func (d Date) String() string {
	switch {
	case d.Year < 0:
		return fmt.Sprintf("-%04d-%02d-%02d", -d.Year, d.Month, d.Day)
	case d.Year > MaxYear:
		return fmt.Sprintf("+%d-%02d-%02d", d.Year, d.Month, d.Day)
	default:
		return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
	}
}

// IsLeapYear reports whether year is a leap year in the proleptic Gregorian calendar.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in the given month, or 0 for an invalid month.
func DaysInMonth(year int, month time.Month) int {
	if month < time.January || month > time.December {
		return 0
	}
	if month == time.February && !IsLeapYear(year) {
		return 28
	}

	return daysInMonth[month]
}

// Encode packs d into a dense key.
//
// The sentinel extremes MinDate and MaxDate encode to MinKey and MaxKey. Any
// other date must have a year in [MinYear, MaxYear] and a valid month and day.
//
// Returns:
//   - int: The dense key
//   - error: ErrDomainRange for an out-of-range year, ErrInvalidDate for an impossible month or day
func Encode(d Date) (int, error) {
	switch d {
	case MinDate:
		return MinKey, nil
	case MaxDate:
		return MaxKey, nil
	}

	if d.Year < MinYear || d.Year > MaxYear {
		return 0, fmt.Errorf("%w: %s", errs.ErrDomainRange, d)
	}
	if d.Day < 1 || d.Day > DaysInMonth(d.Year, d.Month) {
		return 0, fmt.Errorf("%w: %s", errs.ErrInvalidDate, d)
	}

	return d.Year*10000 + int(d.Month)*100 + d.Day, nil
}

// MustEncode is like Encode but panics on error. It is intended for constant dates.
func MustEncode(d Date) int {
	key, err := Encode(d)
	if err != nil {
		panic(err)
	}

	return key
}

// Decode unpacks a dense key into a date. Sentinel keys decode to the extremes.
func Decode(key int) (Date, error) {
	if err := Validate(key); err != nil {
		return Date{}, err
	}

	switch key {
	case MinKey:
		return MinDate, nil
	case MaxKey:
		return MaxDate, nil
	}

	return unpack(key), nil
}

// MustDecode is like Decode but panics on error.
func MustDecode(key int) Date {
	d, err := Decode(key)
	if err != nil {
		panic(err)
	}

	return d
}

// Validate checks that key is a sentinel or packs a real calendar date,
// without building a Date.
func Validate(key int) error {
	if key == MinKey || key == MaxKey {
		return nil
	}
	if key < firstKey || key > lastKey {
		return fmt.Errorf("%w: %d", errs.ErrInvalidKey, key)
	}

	year := key / 10000
	month := (key / 100) % 100
	day := key % 100

	if month < 1 || month > 12 || day < 1 || day > daysInMonth[month] {
		return fmt.Errorf("%w: %d", errs.ErrInvalidKey, key)
	}
	if month == 2 && day == 29 && !IsLeapYear(year) {
		return fmt.Errorf("%w: %d is not a leap year", errs.ErrInvalidKey, key)
	}

	return nil
}

func unpack(key int) Date {
	return Date{
		Year:  key / 10000,
		Month: time.Month((key / 100) % 100),
		Day:   key % 100,
	}
}
