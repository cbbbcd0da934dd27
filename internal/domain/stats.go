package domain

import "github.com/shopspring/decimal"

// AdminStats сводка для панели администратора
type AdminStats struct {
	TotalUsers        int64
	TotalServices     int64
	TotalBookings     int64
	TotalRevenue      decimal.Decimal // сумма total_amount по неотмененным бронированиям
	PendingBookings   int64
	CompletedBookings int64
}

// VendorStats сводка для панели вендора
type VendorStats struct {
	TotalBookings     int64
	PendingBookings   int64
	CompletedBookings int64
	TotalEarnings     decimal.Decimal // сумма vendor_earning по завершенным бронированиям
}
