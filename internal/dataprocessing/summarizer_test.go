package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fuelpos/pkg/contracts/domain"
)

func TestSummarize_Empty(t *testing.T) {
	stats := Summarize(nil)

	assert.Zero(t, stats.TotalTransactions)
	assert.Zero(t, stats.TotalAmount)
	assert.Zero(t, stats.TotalQuantity)
	assert.Zero(t, stats.AverageAmount)
	assert.Zero(t, stats.AverageQuantity)
	assert.Zero(t, stats.UniqueStations)
	assert.Zero(t, stats.UniqueProducts)
	assert.Nil(t, stats.TimeRange)
}

func TestSummarize_SingleRecord(t *testing.T) {
	records := []domain.Transaction{
		{
			ID:        1,
			Ngay:      datePtr(2024, time.May, 1),
			Gio:       "14:05",
			Tram:      "Trạm A",
			MatHang:   "Xăng RON 95",
			SoLuong:   10.5,
			ThanhTien: 207900,
		},
	}

	stats := Summarize(records)

	assert.Equal(t, 1, stats.TotalTransactions)
	assert.Equal(t, 207900.0, stats.TotalAmount)
	assert.Equal(t, 10.5, stats.TotalQuantity)
	assert.Equal(t, 207900.0, stats.AverageAmount)
	assert.Equal(t, 10.5, stats.AverageQuantity)
	assert.Equal(t, 1, stats.UniqueStations)
	assert.Equal(t, 1, stats.UniqueProducts)

	require.NotNil(t, stats.TimeRange)
	want := time.Date(2024, time.May, 1, 14, 5, 0, 0, time.UTC)
	assert.True(t, stats.TimeRange.Earliest.Equal(want))
	assert.True(t, stats.TimeRange.Latest.Equal(want))
}

func TestSummarize_MultipleRecords(t *testing.T) {
	records := []domain.Transaction{
		{ID: 1, Ngay: datePtr(2024, time.May, 1), Gio: "08:00", Tram: "Trạm A", MatHang: "Xăng", SoLuong: 10, ThanhTien: 100000},
		{ID: 2, Ngay: datePtr(2024, time.May, 2), Gio: "12:00", Tram: "Trạm B", MatHang: "Dầu DO", SoLuong: 20, ThanhTien: 300000},
		{ID: 3, Ngay: datePtr(2024, time.May, 3), Gio: "18:00", Tram: "Trạm A", MatHang: "Xăng", SoLuong: 30, ThanhTien: 200000},
	}

	stats := Summarize(records)

	assert.Equal(t, 3, stats.TotalTransactions)
	assert.Equal(t, 600000.0, stats.TotalAmount)
	assert.Equal(t, 60.0, stats.TotalQuantity)
	assert.Equal(t, 200000.0, stats.AverageAmount)
	assert.Equal(t, 20.0, stats.AverageQuantity)
	assert.Equal(t, 2, stats.UniqueStations)
	assert.Equal(t, 2, stats.UniqueProducts)

	require.NotNil(t, stats.TimeRange)
	assert.True(t, stats.TimeRange.Earliest.Equal(time.Date(2024, time.May, 1, 8, 0, 0, 0, time.UTC)))
	assert.True(t, stats.TimeRange.Latest.Equal(time.Date(2024, time.May, 3, 18, 0, 0, 0, time.UTC)))
}

func TestSummarize_BlankStationsAndProductsNotCounted(t *testing.T) {
	records := []domain.Transaction{
		{ID: 1, Tram: "  ", MatHang: ""},
		{ID: 2, Tram: "Trạm A", MatHang: "Xăng"},
	}

	stats := Summarize(records)

	assert.Equal(t, 1, stats.UniqueStations)
	assert.Equal(t, 1, stats.UniqueProducts)
	assert.Nil(t, stats.TimeRange)
}

func TestGroupByPeriod(t *testing.T) {
	records := []domain.Transaction{
		txAt(1, 1, "08:15"),
		txAt(2, 1, "08:45"),
		txAt(3, 1, "14:00"),
		txAt(4, 8, "09:00"),
		{ID: 5, Ngay: nil, Gio: "10:00"},
	}

	tests := []struct {
		name     string
		period   domain.Period
		wantKeys []string
	}{
		{
			name:     "hourly buckets",
			period:   domain.PeriodHour,
			wantKeys: []string{"2024-05-01 08:00", "2024-05-01 14:00", "2024-05-08 09:00"},
		},
		{
			name:     "daily buckets",
			period:   domain.PeriodDay,
			wantKeys: []string{"2024-05-01", "2024-05-08"},
		},
		{
			name:     "weekly buckets start on Monday",
			period:   domain.PeriodWeek,
			wantKeys: []string{"2024-04-29", "2024-05-06"},
		},
		{
			name:     "monthly buckets",
			period:   domain.PeriodMonth,
			wantKeys: []string{"2024-05"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buckets := GroupByPeriod(records, tt.period)

			require.Len(t, buckets, len(tt.wantKeys))
			for _, key := range tt.wantKeys {
				assert.Contains(t, buckets, key)
			}
		})
	}
}

func TestGroupByPeriod_BucketStatistics(t *testing.T) {
	records := []domain.Transaction{
		{ID: 1, Ngay: datePtr(2024, time.May, 1), Gio: "08:15", ThanhTien: 100000, SoLuong: 10},
		{ID: 2, Ngay: datePtr(2024, time.May, 1), Gio: "08:45", ThanhTien: 300000, SoLuong: 30},
	}

	buckets := GroupByPeriod(records, domain.PeriodHour)

	require.Len(t, buckets, 1)
	b := buckets["2024-05-01 08:00"]
	require.NotNil(t, b)
	assert.Len(t, b.Transactions, 2)
	assert.Equal(t, 2, b.Statistics.TotalTransactions)
	assert.Equal(t, 400000.0, b.Statistics.TotalAmount)
	assert.Equal(t, 200000.0, b.Statistics.AverageAmount)
}

func TestGroupByPeriod_DropsRecordsWithoutTimestamp(t *testing.T) {
	records := []domain.Transaction{
		{ID: 1, Ngay: nil, Gio: "08:00"},
	}

	buckets := GroupByPeriod(records, domain.PeriodDay)

	assert.Empty(t, buckets)
}

func TestStartOfISOWeek(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "wednesday rewinds to monday",
			in:   time.Date(2024, time.May, 1, 14, 0, 0, 0, time.UTC),
			want: time.Date(2024, time.April, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "monday stays put",
			in:   time.Date(2024, time.May, 6, 23, 59, 0, 0, time.UTC),
			want: time.Date(2024, time.May, 6, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "sunday belongs to the preceding monday",
			in:   time.Date(2024, time.May, 5, 1, 0, 0, 0, time.UTC),
			want: time.Date(2024, time.April, 29, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, startOfISOWeek(tt.in).Equal(tt.want))
		})
	}
}

func TestHourlyDistribution(t *testing.T) {
	records := []domain.Transaction{
		{ID: 1, Ngay: datePtr(2024, time.May, 1), Gio: "08:15", ThanhTien: 100000},
		{ID: 2, Ngay: datePtr(2024, time.May, 2), Gio: "08:45", ThanhTien: 200000},
		{ID: 3, Ngay: datePtr(2024, time.May, 1), Gio: "23:59", ThanhTien: 50000},
		{ID: 4, Ngay: nil, Gio: "10:00"},
	}

	slots := HourlyDistribution(records)

	require.Len(t, slots, 24)
	for i, slot := range slots {
		assert.Equal(t, i, slot.Hour)
	}
	assert.Equal(t, 2, slots[8].Count)
	assert.Equal(t, 300000.0, slots[8].TotalAmount)
	assert.Equal(t, 1, slots[23].Count)
	assert.Equal(t, 0, slots[10].Count)
}

func TestPipeline_GridToStatistics(t *testing.T) {
	grid := Grid{
		{"CÔNG TY XĂNG DẦU MIỀN NAM"},
		{"Kỳ báo cáo: 05/2024"},
		fullHeader(),
		{1.0, "01/05/2024", "14:05", "Trạm A", "Xăng RON 95", 10.5, "19.800", "207.900"},
		{2.0, "01/05/2024", "14:40", "Trạm A", "Dầu DO", "15", "18.500 ₫", "277.500 ₫"},
		{3.0, "02/05/2024", "09:00", "Trạm B", "Xăng RON 95", 20.0, 19800.0, 396000.0},
	}

	records := mustBuild(t, grid)
	require.Len(t, records, 3)

	start := timePtr(time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC))
	end := timePtr(time.Date(2024, time.May, 1, 23, 59, 59, 0, time.UTC))
	dayOne := FilterByRange(records, start, end)
	require.Len(t, dayOne, 2)

	stats := Summarize(dayOne)
	assert.Equal(t, 2, stats.TotalTransactions)
	assert.Equal(t, 485400.0, stats.TotalAmount)
	assert.Equal(t, 25.5, stats.TotalQuantity)
	assert.Equal(t, 1, stats.UniqueStations)
	assert.Equal(t, 2, stats.UniqueProducts)
	require.NotNil(t, stats.TimeRange)
	assert.True(t, stats.TimeRange.Earliest.Equal(time.Date(2024, time.May, 1, 14, 5, 0, 0, time.UTC)))
	assert.True(t, stats.TimeRange.Latest.Equal(time.Date(2024, time.May, 1, 14, 40, 0, 0, time.UTC)))
}
