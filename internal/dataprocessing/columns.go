package dataprocessing

import "strings"

// Canonical field keys produced by the column mapper. These are the
// field names the rest of the system speaks; the Vietnamese labels below
// exist only at the ingestion boundary.
const (
	KeySTT                = "stt"
	KeyNgay               = "ngay"
	KeyGio                = "gio"
	KeyTram               = "tram"
	KeyTruBom             = "truBom"
	KeyMatHang            = "matHang"
	KeySoLuong            = "soLuong"
	KeyDonGia             = "donGia"
	KeyThanhTien          = "thanhTien"
	KeyTrangThaiThanhToan = "trangThaiThanhToan"
	KeyMaKhachHang        = "maKhachHang"
	KeyTenKhachHang       = "tenKhachHang"
	KeyLoaiKhachHang      = "loaiKhachHang"
	KeyNgayThanhToan      = "ngayThanhToan"
	KeyNhanVien           = "nhanVien"
	KeyBienSoXe           = "bienSoXe"
	KeyTrangThaiHoaDon    = "trangThaiHoaDon"
)

// columnLabels maps each exact Vietnamese column label to its canonical
// field key. Initialized once, never mutated. The relation is
// deliberately many-to-one: both currency-unit spellings of the total
// amount column map to the same key.
var columnLabels = map[string]string{
	"STT":                   KeySTT,
	"Ngày":                  KeyNgay,
	"Giờ":                   KeyGio,
	"Trạm":                  KeyTram,
	"Trụ bơm":               KeyTruBom,
	"Mặt hàng":              KeyMatHang,
	"Số lượng":              KeySoLuong,
	"Đơn giá":               KeyDonGia,
	"Thành tiền (VND)":      KeyThanhTien,
	"Thành tiền (VNĐ)":      KeyThanhTien,
	"Trạng thái thanh toán": KeyTrangThaiThanhToan,
	"Mã khách hàng":         KeyMaKhachHang,
	"Tên khách hàng":        KeyTenKhachHang,
	"Loại khách hàng":       KeyLoaiKhachHang,
	"Ngày thanh toán":       KeyNgayThanhToan,
	"Nhân viên":             KeyNhanVien,
	"Biển số xe":            KeyBienSoXe,
	"Trạng thái hoá đơn":    KeyTrangThaiHoaDon,
}

// headerKeyLabels are the labels scanned for when locating the header
// row. A row counts as the header once at least three of them appear.
var headerKeyLabels = []string{"STT", "Ngày", "Giờ", "Trạm", "Mặt hàng"}

// LocateHeaderRow scans the grid top to bottom for the first row where at
// least three key labels appear as case-insensitive substrings of any
// cell. Real-world exports prepend title and blank rows of unpredictable
// count, so substring matching tolerates minor label variation without a
// full schema. Returns -1 when no row qualifies.
func LocateHeaderRow(grid Grid) int {
	for i, row := range grid {
		found := 0
		for _, label := range headerKeyLabels {
			if rowContainsLabel(row, label) {
				found++
			}
		}
		if found >= 3 {
			return i
		}
	}
	return -1
}

func rowContainsLabel(row []any, label string) bool {
	needle := strings.ToLower(label)
	for _, cell := range row {
		s, ok := cell.(string)
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(strings.TrimSpace(s)), needle) {
			return true
		}
	}
	return false
}

// MapHeaderLabel resolves a header label to its canonical field key,
// trying an exact match first and a case-insensitive match second.
// Empty or unmapped labels yield "" and their column contributes no
// field to any record.
func MapHeaderLabel(label string) string {
	clean := strings.TrimSpace(label)
	if clean == "" {
		return ""
	}
	if key, ok := columnLabels[clean]; ok {
		return key
	}
	lower := strings.ToLower(clean)
	for l, key := range columnLabels {
		if strings.ToLower(l) == lower {
			return key
		}
	}
	return ""
}
