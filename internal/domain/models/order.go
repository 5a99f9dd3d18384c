package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order представляет заказ пользователя на один товар.
// TotalPrice, CustomerName и CustomerAddress — снимок на момент записи,
// при изменении цены товара они не пересчитываются.
type Order struct {
	ID              int64           `json:"id"`
	UserID          int64           `json:"user_id"`
	ProductID       int64           `json:"product_id"`
	Quantity        int             `json:"quantity"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	CustomerName    string          `json:"customer_name"`
	CustomerAddress string          `json:"customer_address"`
	OrderDate       time.Time       `json:"order_date"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// OwnedBy сообщает, принадлежит ли заказ пользователю
func (o *Order) OwnedBy(userID int64) bool {
	return o.UserID == userID
}

// OrderListItem — строка общего списка заказов, имя и адрес берутся из users через JOIN
type OrderListItem struct {
	ID              int64           `json:"id"`
	ProductID       int64           `json:"product_id"`
	Quantity        int             `json:"quantity"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	CustomerName    string          `json:"customer_name"`
	CustomerAddress string          `json:"customer_address"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
