package exporter

import (
	"fmt"
	"sort"
	"time"

	"fuelpos/pkg/contracts/domain"
)

// TransactionExporter writes normalized transactions to CSV files under
// the export directory.
type TransactionExporter struct {
	csvWriter *CSVWriter
}

// NewTransactionExporter creates a new transaction exporter
func NewTransactionExporter(exportDir string) *TransactionExporter {
	return &TransactionExporter{
		csvWriter: NewCSVWriter(exportDir),
	}
}

// StationSummary represents aggregate figures for one station
type StationSummary struct {
	Station       string
	Transactions  int
	TotalQuantity float64
	TotalAmount   float64
	AverageAmount float64
}

// ExportTransactions writes all records to a single CSV file and returns
// the full path of the written file.
func (t *TransactionExporter) ExportTransactions(records []domain.Transaction, filename string) (string, error) {
	csvRecords := make([][]string, 0, len(records))
	for _, record := range records {
		csvRecords = append(csvRecords, t.recordToCSVRow(record))
	}

	if err := t.csvWriter.WriteSimpleCSV(filename, t.getHeaders(), csvRecords); err != nil {
		return "", fmt.Errorf("failed to write transactions CSV: %w", err)
	}

	return t.csvWriter.resolvePath(filename), nil
}

// ExportDailyFiles writes one CSV file per calendar date, named by the
// record date. Records without a date are skipped.
func (t *TransactionExporter) ExportDailyFiles(records []domain.Transaction) error {
	recordsByDate := make(map[string][]domain.Transaction)
	for _, record := range records {
		if record.Ngay == nil {
			continue
		}
		dateKey := record.Ngay.Format("2006_01_02")
		recordsByDate[dateKey] = append(recordsByDate[dateKey], record)
	}

	var dates []string
	for date := range recordsByDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	for _, dateKey := range dates {
		dayRecords := recordsByDate[dateKey]

		var csvRecords [][]string
		for _, record := range dayRecords {
			csvRecords = append(csvRecords, t.recordToCSVRow(record))
		}

		filename := fmt.Sprintf("daily_%s.csv", dateKey)
		if err := t.csvWriter.WriteSimpleCSV(filename, t.getHeaders(), csvRecords); err != nil {
			return fmt.Errorf("failed to write daily file %s: %w", filename, err)
		}
	}

	return nil
}

// GenerateStationSummaries computes per-station aggregates, sorted by
// station name. Records with a blank station are grouped under one bucket.
func (t *TransactionExporter) GenerateStationSummaries(records []domain.Transaction) []StationSummary {
	byStation := make(map[string]*StationSummary)
	for _, record := range records {
		station := record.Tram
		summary, ok := byStation[station]
		if !ok {
			summary = &StationSummary{Station: station}
			byStation[station] = summary
		}
		summary.Transactions++
		summary.TotalQuantity += record.SoLuong
		summary.TotalAmount += record.ThanhTien
	}

	summaries := make([]StationSummary, 0, len(byStation))
	for _, summary := range byStation {
		if summary.Transactions > 0 {
			summary.AverageAmount = summary.TotalAmount / float64(summary.Transactions)
		}
		summaries = append(summaries, *summary)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Station < summaries[j].Station
	})
	return summaries
}

// ExportStationSummary writes per-station aggregates to a CSV file.
func (t *TransactionExporter) ExportStationSummary(summaries []StationSummary, filename string) error {
	headers := []string{"Trạm", "Số giao dịch", "Tổng số lượng", "Tổng tiền", "Trung bình"}

	var csvRecords [][]string
	for _, summary := range summaries {
		csvRecords = append(csvRecords, []string{
			summary.Station,
			formatInt(int64(summary.Transactions)),
			formatFloat(summary.TotalQuantity),
			formatVND(summary.TotalAmount),
			formatVND(summary.AverageAmount),
		})
	}

	if err := t.csvWriter.WriteSimpleCSV(filename, headers, csvRecords); err != nil {
		return fmt.Errorf("failed to write station summary: %w", err)
	}
	return nil
}

// getHeaders returns the CSV header row matching the source report columns
func (t *TransactionExporter) getHeaders() []string {
	return []string{
		"ID", "STT", "Ngày", "Giờ", "Trạm", "Trụ bơm", "Mặt hàng",
		"Số lượng", "Đơn giá", "Thành tiền", "Trạng thái thanh toán",
		"Mã khách hàng", "Tên khách hàng", "Loại khách hàng",
		"Ngày thanh toán", "Nhân viên", "Biển số xe", "Trạng thái hóa đơn",
	}
}

// recordToCSVRow converts one transaction to a CSV row
func (t *TransactionExporter) recordToCSVRow(record domain.Transaction) []string {
	return []string{
		formatInt(int64(record.ID)),
		record.STT,
		formatDate(record.Ngay),
		record.Gio,
		record.Tram,
		record.TruBom,
		record.MatHang,
		formatFloat(record.SoLuong),
		formatVND(record.DonGia),
		formatVND(record.ThanhTien),
		record.TrangThaiThanhToan,
		record.MaKhachHang,
		record.TenKhachHang,
		record.LoaiKhachHang,
		formatDate(record.NgayThanhToan),
		record.NhanVien,
		record.BienSoXe,
		record.TrangThaiHoaDon,
	}
}

// formatDate formats an optional date in the dd/MM/yyyy style the source
// reports use. A nil date becomes an empty cell.
func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("02/01/2006")
}
