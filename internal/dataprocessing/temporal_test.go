package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fuelpos/pkg/contracts/domain"
)

func datePtr(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestComposeDateTime(t *testing.T) {
	base := datePtr(2024, time.May, 1)

	tests := []struct {
		name string
		tx   domain.Transaction
		want *time.Time
	}{
		{
			name: "hour and minute overlay",
			tx:   domain.Transaction{Ngay: base, Gio: "14:05"},
			want: timePtr(time.Date(2024, time.May, 1, 14, 5, 0, 0, time.UTC)),
		},
		{
			name: "seconds included",
			tx:   domain.Transaction{Ngay: base, Gio: "14:05:30"},
			want: timePtr(time.Date(2024, time.May, 1, 14, 5, 30, 0, time.UTC)),
		},
		{
			name: "single digit hour",
			tx:   domain.Transaction{Ngay: base, Gio: "8:30"},
			want: timePtr(time.Date(2024, time.May, 1, 8, 30, 0, 0, time.UTC)),
		},
		{
			name: "time embedded in longer text",
			tx:   domain.Transaction{Ngay: base, Gio: "lúc 14:05 chiều"},
			want: timePtr(time.Date(2024, time.May, 1, 14, 5, 0, 0, time.UTC)),
		},
		{
			name: "absent gio returns the date unchanged",
			tx:   domain.Transaction{Ngay: base, Gio: ""},
			want: base,
		},
		{
			name: "non-time gio returns the date unchanged",
			tx:   domain.Transaction{Ngay: base, Gio: "sáng"},
			want: base,
		},
		{
			name: "nil ngay yields nil",
			tx:   domain.Transaction{Ngay: nil, Gio: "14:05"},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComposeDateTime(tt.tx)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, got.Equal(*tt.want), "got %v, want %v", got, tt.want)
		})
	}
}

func TestComposeDateTime_DoesNotMutateRecord(t *testing.T) {
	base := datePtr(2024, time.May, 1)
	tx := domain.Transaction{Ngay: base, Gio: "14:05"}

	_ = ComposeDateTime(tx)

	assert.Equal(t, 0, tx.Ngay.Hour())
	assert.Equal(t, 0, tx.Ngay.Minute())
}

func timePtr(t time.Time) *time.Time {
	return &t
}
