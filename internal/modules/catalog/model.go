// README: Wash service and addon catalog records (externally managed, read-only).
package catalog

import "ghaseel/internal/types"

type Service struct {
	ID         types.ID
	Slug       string
	NameEn     string
	NameAr     string
	TeamPrice  float64
	SoloPrice  float64
	EstMinutes int
	Visible    bool
	SortOrder  int
}

type Addon struct {
	ID         types.ID
	NameEn     string
	NameAr     string
	Price      float64
	EstMinutes int
}
