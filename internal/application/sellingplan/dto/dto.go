package dto

import (
	"time"

	"github.com/retain-hq/retain/internal/domain/sellingplan"
	"github.com/retain-hq/retain/internal/shared/mapper"
)

// PlanDTO is the API representation of a selling plan.
type PlanDTO struct {
	SID               string   `json:"sid"`
	Name              string   `json:"name"`
	Description       string   `json:"description,omitempty"`
	Frequency         string   `json:"frequency"`
	FrequencyInterval int      `json:"frequency_interval"`
	DiscountType      string   `json:"discount_type"`
	DiscountValue     int64    `json:"discount_value"`
	ProductIDs        []string `json:"product_ids"`
	Enabled           bool     `json:"enabled"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToPlanDTO(p *sellingplan.SellingPlan) *PlanDTO {
	if p == nil {
		return nil
	}
	return &PlanDTO{
		SID:               p.SID(),
		Name:              p.Name(),
		Description:       p.Description(),
		Frequency:         string(p.Frequency()),
		FrequencyInterval: p.FrequencyInterval(),
		DiscountType:      p.DiscountType().String(),
		DiscountValue:     p.DiscountValue(),
		ProductIDs:        p.ProductIDs(),
		Enabled:           p.Enabled(),
		CreatedAt:         p.CreatedAt(),
		UpdatedAt:         p.UpdatedAt(),
	}
}

func ToPlanDTOs(plans []*sellingplan.SellingPlan) []*PlanDTO {
	return mapper.MapSlice(plans, ToPlanDTO)
}
