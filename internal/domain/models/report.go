package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportLine — строка отчета, собранная из orders, products и categories
type ReportLine struct {
	ID           int64           `json:"id"`
	ProductName  string          `json:"product_name"`
	CategoryName string          `json:"category_name"`
	Quantity     int             `json:"quantity"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	CustomerName string          `json:"customer_name"`
	OrderDate    time.Time       `json:"order_date"`
}

// Report — агрегированный отчет по всем заказам
type Report struct {
	TotalOrders  int             `json:"total_orders"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	Orders       []ReportLine    `json:"orders"`
}
