package calendar

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentaltrack/server/internal/models"
)

func ptr(t time.Time) *time.Time { return &t }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func booking(start time.Time, end *time.Time) models.Transaction {
	return models.Transaction{ID: uuid.New(), PropertyID: uuid.New(), IsIncome: true, StartDate: &start, EndDate: end}
}

func TestMonth(t *testing.T) {
	tests := []struct {
		name  string
		month Month
		days  int
	}{
		{name: "January", month: Month{2026, time.January}, days: 31},
		{name: "February", month: Month{2026, time.February}, days: 28},
		{name: "Leap February", month: Month{2028, time.February}, days: 29},
		{name: "April", month: Month{2026, time.April}, days: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.days, tt.month.Days())
			assert.Equal(t, 1, tt.month.First().Day())
			assert.Equal(t, tt.days, tt.month.Last().Day())
		})
	}

	assert.Equal(t, Month{2027, time.January}, Month{2026, time.December}.Add(1))
	assert.Equal(t, Month{2025, time.November}, Month{2026, time.January}.Add(-2))
	assert.Equal(t, Month{2026, time.February}, Month{2026, time.January}.Add(1), "no overflow from the 31st")

	m, err := ParseMonth("2026-02")
	require.NoError(t, err)
	assert.Equal(t, Month{2026, time.February}, m)
	assert.Equal(t, "2026-02", m.String())

	_, err = ParseMonth("February")
	assert.Error(t, err)
}

func TestBucketClipsAtMonthStart(t *testing.T) {
	b := booking(date(2026, 1, 30), ptr(date(2026, 2, 2)))

	days := Bucket(Month{2026, time.February}, []models.Transaction{b})

	assert.Len(t, days, 2)
	assert.Equal(t, []models.Transaction{b}, days[1])
	assert.Equal(t, []models.Transaction{b}, days[2])
}

func TestBucketClipsAtMonthEnd(t *testing.T) {
	b := booking(date(2026, 4, 29), ptr(date(2026, 5, 3)))

	days := Bucket(Month{2026, time.April}, []models.Transaction{b})

	assert.Len(t, days, 2)
	assert.Contains(t, days, 29)
	assert.Contains(t, days, 30)
}

func TestBucketSkipsRecordsOutsideMonth(t *testing.T) {
	records := []models.Transaction{
		booking(date(2026, 1, 5), ptr(date(2026, 1, 9))),
		booking(date(2026, 3, 1), nil),
		{ID: uuid.New()}, // no start date
	}

	days := Bucket(Month{2026, time.February}, records)
	assert.Empty(t, days)
}

func TestBucketSingleDayWhenEndMissing(t *testing.T) {
	b := booking(date(2026, 2, 14), nil)

	days := Bucket(Month{2026, time.February}, []models.Transaction{b})

	assert.Len(t, days, 1)
	assert.Equal(t, []models.Transaction{b}, days[14])
}

func TestBucketSkipsInvertedRange(t *testing.T) {
	b := booking(date(2026, 2, 10), ptr(date(2026, 2, 8)))
	assert.Empty(t, Bucket(Month{2026, time.February}, []models.Transaction{b}))
}

func TestBucketPreservesInputOrderAndDuplicates(t *testing.T) {
	first := booking(date(2026, 2, 1), ptr(date(2026, 2, 5)))
	second := booking(date(2026, 2, 3), ptr(date(2026, 2, 4)))
	second.PropertyID = first.PropertyID

	days := Bucket(Month{2026, time.February}, []models.Transaction{first, second})

	assert.Equal(t, []models.Transaction{first}, days[2])
	assert.Equal(t, []models.Transaction{first, second}, days[3])
	assert.Equal(t, []models.Transaction{first, second}, days[4])
	assert.Equal(t, []models.Transaction{first}, days[5])
}

func TestBucketIgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2026, 2, 27, 16, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	b := booking(start, &end)

	days := Bucket(Month{2026, time.February}, []models.Transaction{b})
	assert.Len(t, days, 2)
	assert.Contains(t, days, 27)
	assert.Contains(t, days, 28)
}

func TestBucketKeysWithinMonthAndIdempotent(t *testing.T) {
	var records []models.Transaction
	for i := 0; i < 40; i++ {
		start := date(2026, 1, 1).AddDate(0, 0, i*3)
		records = append(records, booking(start, ptr(start.AddDate(0, 0, i%9))))
	}

	for m := 1; m <= 12; m++ {
		month := Month{2026, time.Month(m)}
		first := Bucket(month, records)
		second := Bucket(month, records)
		assert.Equal(t, first, second)

		inBuckets := map[uuid.UUID]bool{}
		for d, bucket := range first {
			assert.GreaterOrEqual(t, d, 1)
			assert.LessOrEqual(t, d, month.Days())
			for _, r := range bucket {
				inBuckets[r.ID] = true
			}
		}

		for _, r := range records {
			start, end, _ := r.Span()
			intersects := !start.After(month.Last()) && !end.Before(month.First())
			assert.Equal(t, intersects, inBuckets[r.ID], "record %s in %s", r.ID, month)
		}
	}
}

func TestBucketBlockedDatesFullMonth(t *testing.T) {
	b := models.BlockedDate{ID: uuid.New(), StartDate: date(2026, 2, 1), EndDate: date(2026, 2, 28)}

	days := Bucket(Month{2026, time.February}, []models.BlockedDate{b})

	assert.Len(t, days, 28)
	for d := 1; d <= 28; d++ {
		assert.Equal(t, []models.BlockedDate{b}, days[d])
	}
}
