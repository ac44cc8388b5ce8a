package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// KPIResponse indicadores del dashboard.
type KPIResponse struct {
	TotalProducts   int `json:"totalProducts"`
	ActiveOrders    int `json:"activeOrders"`
	ProductsInStock int `json:"productsInStock"`
	LowStockItems   int `json:"lowStockItems"`
	PendingFormulas int `json:"pendingFormulas"`
}

// MonthlyProduction cantidad planificada agregada por mes (gráfico de barras).
type MonthlyProduction struct {
	Name  string          `json:"name"` // Jan, Fev, Mar... (abreviaturas pt-BR del dashboard)
	Value decimal.Decimal `json:"value"`
}

// StockTrendPoint neto diario de movimientos (entradas - salidas).
type StockTrendPoint struct {
	Date time.Time       `json:"date"`
	In   decimal.Decimal `json:"in"`
	Out  decimal.Decimal `json:"out"`
	Net  decimal.Decimal `json:"net"`
}
