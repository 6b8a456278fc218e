package repository

import "github.com/sangkips/nippo-api/internal/domain/sales"

// SalesRepository reads order history for the sales aggregator
type SalesRepository interface {
	sales.Source
}
