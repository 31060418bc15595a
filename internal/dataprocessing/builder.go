package dataprocessing

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fuelpos/pkg/contracts/domain"
)

// ParseError reports a structural failure that aborts the whole parse:
// too few rows, or no detectable header. Per-cell problems never raise
// it; they degrade to field-level fallbacks instead.
type ParseError struct {
	Message string
}

func (e *ParseError) Error() string {
	return e.Message
}

// fieldKind selects the coercion rule applied to a canonical field.
type fieldKind int

const (
	fieldText fieldKind = iota
	fieldDate
	fieldNumber
)

// fieldKinds dispatches each canonical key to its coercion rule. Keys
// absent here default to trimmed text.
var fieldKinds = map[string]fieldKind{
	KeyNgay:          fieldDate,
	KeyNgayThanhToan: fieldDate,
	KeySoLuong:       fieldNumber,
	KeyDonGia:        fieldNumber,
	KeyThanhTien:     fieldNumber,
}

// BuildRecords transforms a raw grid into the ordered sequence of
// canonical transaction records. It locates the header row, skips blank
// data rows, and assigns sequential 1-based ids in sheet order. Columns
// whose header is empty or unrecognized contribute nothing.
func BuildRecords(grid Grid) ([]domain.Transaction, error) {
	if len(grid) < 2 {
		return nil, &ParseError{Message: "spreadsheet must contain at least a header row and one data row"}
	}

	headerIdx := LocateHeaderRow(grid)
	if headerIdx < 0 {
		return nil, &ParseError{Message: "no header row found; expected columns such as STT, Ngày, Giờ, Trạm, Mặt hàng"}
	}

	headers := grid[headerIdx]
	records := make([]domain.Transaction, 0, len(grid)-headerIdx-1)

	for _, row := range grid[headerIdx+1:] {
		if blankRow(row) {
			continue
		}

		tx := domain.Transaction{ID: len(records) + 1}
		for col, header := range headers {
			key := MapHeaderLabel(cellText(header))
			if key == "" {
				continue
			}
			var cell any
			if col < len(row) {
				cell = row[col]
			}
			assignField(&tx, key, cell)
		}
		records = append(records, tx)
	}

	return records, nil
}

// blankRow reports whether every cell is empty; such rows are tolerated
// anywhere below the header and simply skipped.
func blankRow(row []any) bool {
	for _, cell := range row {
		switch v := cell.(type) {
		case nil:
		case string:
			if strings.TrimSpace(v) != "" {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func assignField(tx *domain.Transaction, key string, cell any) {
	switch fieldKinds[key] {
	case fieldDate:
		t := dateOnly(CoerceDate(cell))
		switch key {
		case KeyNgay:
			tx.Ngay = t
		case KeyNgayThanhToan:
			tx.NgayThanhToan = t
		}
	case fieldNumber:
		n := CoerceNumber(cell)
		switch key {
		case KeySoLuong:
			tx.SoLuong = n
		case KeyDonGia:
			tx.DonGia = n
		case KeyThanhTien:
			tx.ThanhTien = n
		}
	default:
		s := cellText(cell)
		switch key {
		case KeySTT:
			tx.STT = s
		case KeyGio:
			tx.Gio = s
		case KeyTram:
			tx.Tram = s
		case KeyTruBom:
			tx.TruBom = s
		case KeyMatHang:
			tx.MatHang = s
		case KeyTrangThaiThanhToan:
			tx.TrangThaiThanhToan = s
		case KeyMaKhachHang:
			tx.MaKhachHang = s
		case KeyTenKhachHang:
			tx.TenKhachHang = s
		case KeyLoaiKhachHang:
			tx.LoaiKhachHang = s
		case KeyNhanVien:
			tx.NhanVien = s
		case KeyBienSoXe:
			tx.BienSoXe = s
		case KeyTrangThaiHoaDon:
			tx.TrangThaiHoaDon = s
		}
	}
}

// dateOnly zeroes the time-of-day component. Gio is the sole carrier of
// time; a date field must never smuggle one in.
func dateOnly(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return &d
}

// cellText renders a cell as trimmed display text. Numeric cells format
// without a trailing fraction so sequence numbers read as "1", not "1.0".
func cellText(cell any) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
