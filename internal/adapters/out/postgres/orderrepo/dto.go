// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Markers and items are stored as JSON: both are small, order-scoped lists
// read and written only through the aggregate.
type OrderDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID      uuid.UUID  `gorm:"type:uuid;index"`
	CompanyID       uuid.UUID  `gorm:"type:uuid;index"`
	PartnerID       *uuid.UUID `gorm:"type:uuid;index"`
	Channel         int
	GrandTotal      decimal.Decimal `gorm:"type:numeric"`
	Outstanding     decimal.Decimal `gorm:"type:numeric"`
	ShippingExpense decimal.Decimal `gorm:"type:numeric"`
	Pickup          bool
	State           int      `gorm:"index"`
	Markers         []string `gorm:"serializer:json;type:jsonb"`
	Items           []ItemDTO `gorm:"serializer:json;type:jsonb"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is one order line inside the JSON items column.
type ItemDTO struct {
	ItemCode string          `json:"item_code"`
	Quantity int             `json:"quantity"`
	Amount   decimal.Decimal `json:"amount"`
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var partnerID *uuid.UUID
	if id := aggregate.PartnerID(); id != nil {
		raw := id.Bytes()
		partnerID = &raw
	}

	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, li := range aggregate.Items() {
		items = append(items, ItemDTO{
			ItemCode: li.ItemCode(),
			Quantity: li.Quantity(),
			Amount:   li.Amount().Amount(),
		})
	}

	return OrderDTO{
		ID:              aggregate.ID().Bytes(),
		CustomerID:      aggregate.CustomerID().Bytes(),
		CompanyID:       aggregate.CompanyID().Bytes(),
		PartnerID:       partnerID,
		Channel:         int(aggregate.Channel()),
		GrandTotal:      aggregate.GrandTotal().Amount(),
		Outstanding:     aggregate.Outstanding().Amount(),
		ShippingExpense: aggregate.ShippingExpense().Amount(),
		Pickup:          aggregate.IsPickup(),
		State:           int(aggregate.State()),
		Markers:         aggregate.Markers(),
		Items:           items,
	}
}

// toDomain converts a database DTO to an order domain aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	companyID, err := kernel.UUIDFromBytes(dto.CompanyID[:])
	if err != nil {
		return nil, err
	}

	var partnerID *kernel.UUID
	if dto.PartnerID != nil {
		pID, partnerErr := kernel.UUIDFromBytes((*dto.PartnerID)[:])
		if partnerErr != nil {
			return nil, partnerErr
		}
		partnerID = &pID
	}

	grandTotal, err := kernel.NewMoney(dto.GrandTotal)
	if err != nil {
		return nil, err
	}
	outstanding, err := kernel.NewMoney(dto.Outstanding)
	if err != nil {
		return nil, err
	}
	shipping, err := kernel.NewMoney(dto.ShippingExpense)
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, it := range dto.Items {
		amount, itemErr := kernel.NewMoney(it.Amount)
		if itemErr != nil {
			return nil, itemErr
		}
		li, itemErr := order.NewLineItem(it.ItemCode, it.Quantity, amount)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, li)
	}

	return order.RestoreOrder(
		id, customerID, companyID, partnerID,
		order.PaymentChannel(dto.Channel),
		grandTotal, outstanding, shipping,
		dto.Pickup, order.State(dto.State), dto.Markers, items,
	)
}
