package domain

import (
	"time"
)

// Transaction is a single normalized fuel-station point-of-sale record.
// Every field except ID is optional: spreadsheet exports rarely carry the
// full column set, and per-cell coercion failures degrade to the zero
// value (nil date, 0 number, empty string) instead of failing the row.
//
// Ngay holds the calendar date only; its time-of-day is always zeroed at
// build time. Gio is the sole carrier of time-of-day, as free text.
type Transaction struct {
	ID                 int        `json:"id"`
	STT                string     `json:"stt,omitempty"`
	Ngay               *time.Time `json:"ngay,omitempty"`
	Gio                string     `json:"gio,omitempty"`
	Tram               string     `json:"tram,omitempty"`
	TruBom             string     `json:"truBom,omitempty"`
	MatHang            string     `json:"matHang,omitempty"`
	SoLuong            float64    `json:"soLuong"`
	DonGia             float64    `json:"donGia"`
	ThanhTien          float64    `json:"thanhTien"`
	TrangThaiThanhToan string     `json:"trangThaiThanhToan,omitempty"`
	MaKhachHang        string     `json:"maKhachHang,omitempty"`
	TenKhachHang       string     `json:"tenKhachHang,omitempty"`
	LoaiKhachHang      string     `json:"loaiKhachHang,omitempty"`
	NgayThanhToan      *time.Time `json:"ngayThanhToan,omitempty"`
	NhanVien           string     `json:"nhanVien,omitempty"`
	BienSoXe           string     `json:"bienSoXe,omitempty"`
	TrangThaiHoaDon    string     `json:"trangThaiHoaDon,omitempty"`
}

// TimeRange is the earliest/latest composed timestamp across a record set.
type TimeRange struct {
	Earliest time.Time `json:"earliest"`
	Latest   time.Time `json:"latest"`
}

// TransactionStats summarizes a record set. It is derived on demand and
// never persisted independently.
type TransactionStats struct {
	TotalTransactions int        `json:"total_transactions"`
	TotalAmount       float64    `json:"total_amount"`
	TotalQuantity     float64    `json:"total_quantity"`
	AverageAmount     float64    `json:"average_amount"`
	AverageQuantity   float64    `json:"average_quantity"`
	UniqueStations    int        `json:"unique_stations"`
	UniqueProducts    int        `json:"unique_products"`
	TimeRange         *TimeRange `json:"time_range"`
}

// Period identifies a time-bucketing granularity for grouped statistics.
type Period string

const (
	PeriodHour  Period = "hour"
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// Valid reports whether p is a supported bucketing period.
func (p Period) Valid() bool {
	switch p {
	case PeriodHour, PeriodDay, PeriodWeek, PeriodMonth:
		return true
	}
	return false
}

// PeriodBucket holds the records falling into one time bucket together
// with their recursively computed statistics.
type PeriodBucket struct {
	Transactions []Transaction    `json:"transactions"`
	Statistics   TransactionStats `json:"statistics"`
}

// HourlySlot is one hour of the 24-slot distribution used for charts.
type HourlySlot struct {
	Hour        int     `json:"hour"`
	Count       int     `json:"count"`
	TotalAmount float64 `json:"total_amount"`
}

// ManualEntry is a single hand-keyed transaction from the data-entry
// form. Revenue is derived from quantity x unit price when omitted.
type ManualEntry struct {
	ID        int       `json:"id"`
	Time      time.Time `json:"time" validate:"required"`
	Quantity  float64   `json:"quantity" validate:"required,gt=0"`
	Pump      string    `json:"pump" validate:"required"`
	UnitPrice float64   `json:"unit_price" validate:"required,gt=0"`
	Revenue   float64   `json:"revenue" validate:"omitempty,gt=0"`
	CreatedAt time.Time `json:"created_at"`
}
