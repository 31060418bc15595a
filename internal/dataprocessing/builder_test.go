package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fuelpos/pkg/contracts/domain"
)

func fullHeader() []any {
	return []any{"STT", "Ngày", "Giờ", "Trạm", "Mặt hàng", "Số lượng", "Đơn giá", "Thành tiền (VND)"}
}

func TestBuildRecords_FullPipeline(t *testing.T) {
	grid := Grid{
		{"BÁO CÁO GIAO DỊCH THÁNG 5"},
		{nil, nil, nil},
		fullHeader(),
		{1.0, "01/05/2024", "14:05", "Trạm A", "Xăng RON 95", 10.5, "19.800", "207.900"},
		{2.0, "02/05/2024", "08:30", "Trạm B", "Dầu DO", "20", "18.500 ₫", "370.000 ₫"},
	}

	records, err := BuildRecords(grid)
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, "1", first.STT)
	require.NotNil(t, first.Ngay)
	assert.Equal(t, 2024, first.Ngay.Year())
	assert.Equal(t, time.May, first.Ngay.Month())
	assert.Equal(t, 1, first.Ngay.Day())
	assert.Equal(t, 0, first.Ngay.Hour())
	assert.Equal(t, "14:05", first.Gio)
	assert.Equal(t, "Trạm A", first.Tram)
	assert.Equal(t, "Xăng RON 95", first.MatHang)
	assert.Equal(t, 10.5, first.SoLuong)
	assert.Equal(t, 19800.0, first.DonGia)
	assert.Equal(t, 207900.0, first.ThanhTien)

	second := records[1]
	assert.Equal(t, 2, second.ID)
	assert.Equal(t, 20.0, second.SoLuong)
	assert.Equal(t, 18500.0, second.DonGia)
	assert.Equal(t, 370000.0, second.ThanhTien)
}

func TestBuildRecords_SkipsBlankRows(t *testing.T) {
	grid := Grid{
		fullHeader(),
		{1.0, "01/05/2024", "10:00", "Trạm A", "Xăng", 5.0, 19800.0, 99000.0},
		{nil, nil, nil, nil, nil, nil, nil, nil},
		{"", "  ", "", "", "", "", "", ""},
		{2.0, "01/05/2024", "11:00", "Trạm A", "Xăng", 5.0, 19800.0, 99000.0},
	}

	records, err := BuildRecords(grid)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Ids stay sequential across skipped rows.
	assert.Equal(t, 1, records[0].ID)
	assert.Equal(t, 2, records[1].ID)
}

func TestBuildRecords_ShortRowsTolerated(t *testing.T) {
	grid := Grid{
		fullHeader(),
		{1.0, "01/05/2024", "10:00"},
	}

	records, err := BuildRecords(grid)
	require.NoError(t, err)
	require.Len(t, records, 1)

	tx := records[0]
	assert.Empty(t, tx.Tram)
	assert.Zero(t, tx.SoLuong)
	assert.Zero(t, tx.ThanhTien)
	require.NotNil(t, tx.Ngay)
}

func TestBuildRecords_UnmappedColumnsIgnored(t *testing.T) {
	grid := Grid{
		{"STT", "Ngày", "Giờ", "Trạm", "Ghi chú"},
		{1.0, "01/05/2024", "10:00", "Trạm A", "khách quen"},
	}

	records, err := BuildRecords(grid)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Trạm A", records[0].Tram)
}

func TestBuildRecords_DateSerialCell(t *testing.T) {
	grid := Grid{
		fullHeader(),
		{1.0, 45413.0, "14:05", "Trạm A", "Xăng", 10.0, 19800.0, 198000.0},
	}

	records, err := BuildRecords(grid)
	require.NoError(t, err)
	require.Len(t, records, 1)

	require.NotNil(t, records[0].Ngay)
	assert.Equal(t, 2024, records[0].Ngay.Year())
	assert.Equal(t, time.May, records[0].Ngay.Month())
	assert.Equal(t, 1, records[0].Ngay.Day())
}

func TestBuildRecords_StructuralErrors(t *testing.T) {
	tests := []struct {
		name string
		grid Grid
	}{
		{
			name: "empty grid",
			grid: Grid{},
		},
		{
			name: "header only",
			grid: Grid{fullHeader()},
		},
		{
			name: "no recognizable header",
			grid: Grid{
				{"alpha", "beta", "gamma"},
				{1.0, 2.0, 3.0},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := BuildRecords(tt.grid)
			assert.Nil(t, records)
			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.NotEmpty(t, parseErr.Message)
		})
	}
}

func TestBuildRecords_OrderPreserved(t *testing.T) {
	grid := Grid{
		fullHeader(),
		{3.0, "03/05/2024", "10:00", "Trạm C", "Xăng", 1.0, 1.0, 1.0},
		{1.0, "01/05/2024", "10:00", "Trạm A", "Xăng", 1.0, 1.0, 1.0},
		{2.0, "02/05/2024", "10:00", "Trạm B", "Xăng", 1.0, 1.0, 1.0},
	}

	records, err := BuildRecords(grid)
	require.NoError(t, err)
	require.Len(t, records, 3)

	// Sheet order wins over any value in the STT column.
	assert.Equal(t, []string{"3", "1", "2"}, []string{records[0].STT, records[1].STT, records[2].STT})
	assert.Equal(t, []int{1, 2, 3}, []int{records[0].ID, records[1].ID, records[2].ID})
}

func mustBuild(t *testing.T, grid Grid) []domain.Transaction {
	t.Helper()
	records, err := BuildRecords(grid)
	require.NoError(t, err)
	return records
}
