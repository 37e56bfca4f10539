// Package ledgerrepo provides persistence for ledger entries and delivery
// confirmations.
package ledgerrepo

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/ledger"
	"fulfillment/internal/core/domain/model/order"
)

// EntryDTO represents the database structure for ledger entries.
// The unique index on the idempotency key is the hard guarantee behind
// find-or-create: a lost race surfaces as a constraint violation, never
// a duplicate entry.
type EntryDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	IdempotencyKey  string     `gorm:"uniqueIndex"`
	Kind            int
	CompanyID       uuid.UUID  `gorm:"type:uuid;index"`
	OrderID         *uuid.UUID `gorm:"type:uuid;index"`
	DebitAccountID  uuid.UUID  `gorm:"type:uuid"`
	CreditAccountID uuid.UUID  `gorm:"type:uuid"`
	Amount          decimal.Decimal `gorm:"type:numeric"`
	Remarks         string
}

// TableName specifies the database table name for ledger entries.
func (EntryDTO) TableName() string {
	return "ledger_entries"
}

// ConfirmationDTO represents the database structure for delivery
// confirmations. The unique index on order_id enforces one per order.
type ConfirmationDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID  `gorm:"type:uuid;uniqueIndex"`
	CourierID *uuid.UUID `gorm:"type:uuid;index"`
	Pickup    bool
	Items     []ItemDTO `gorm:"serializer:json;type:jsonb"`
	Completed bool
}

// TableName specifies the database table name for delivery confirmations.
func (ConfirmationDTO) TableName() string {
	return "delivery_confirmations"
}

// ItemDTO is one order line inside the JSON items column.
type ItemDTO struct {
	ItemCode string          `json:"item_code"`
	Quantity int             `json:"quantity"`
	Amount   decimal.Decimal `json:"amount"`
}

func entryFromDomain(e *ledger.Entry) EntryDTO {
	var orderID *uuid.UUID
	if id := e.OrderID(); id != nil {
		raw := id.Bytes()
		orderID = &raw
	}

	return EntryDTO{
		ID:              e.ID().Bytes(),
		IdempotencyKey:  e.IdempotencyKey(),
		Kind:            int(e.Kind()),
		CompanyID:       e.CompanyID().Bytes(),
		OrderID:         orderID,
		DebitAccountID:  e.DebitAccountID().Bytes(),
		CreditAccountID: e.CreditAccountID().Bytes(),
		Amount:          e.Amount().Amount(),
		Remarks:         e.Remarks(),
	}
}

func entryToDomain(dto EntryDTO) (*ledger.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	companyID, err := kernel.UUIDFromBytes(dto.CompanyID[:])
	if err != nil {
		return nil, err
	}
	debit, err := kernel.UUIDFromBytes(dto.DebitAccountID[:])
	if err != nil {
		return nil, err
	}
	credit, err := kernel.UUIDFromBytes(dto.CreditAccountID[:])
	if err != nil {
		return nil, err
	}

	var orderID *kernel.UUID
	if dto.OrderID != nil {
		oID, orderErr := kernel.UUIDFromBytes((*dto.OrderID)[:])
		if orderErr != nil {
			return nil, orderErr
		}
		orderID = &oID
	}

	amount, err := kernel.NewMoney(dto.Amount)
	if err != nil {
		return nil, err
	}

	return ledger.RestoreEntry(
		id, dto.IdempotencyKey, ledger.EntryKind(dto.Kind),
		companyID, orderID, debit, credit, amount, dto.Remarks,
	)
}

func confirmationFromDomain(d *ledger.DeliveryConfirmation) ConfirmationDTO {
	var courierID *uuid.UUID
	if id := d.CourierID(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	items := make([]ItemDTO, 0, len(d.Items()))
	for _, li := range d.Items() {
		items = append(items, ItemDTO{
			ItemCode: li.ItemCode(),
			Quantity: li.Quantity(),
			Amount:   li.Amount().Amount(),
		})
	}

	return ConfirmationDTO{
		ID:        d.ID().Bytes(),
		OrderID:   d.OrderID().Bytes(),
		CourierID: courierID,
		Pickup:    d.IsPickup(),
		Items:     items,
		Completed: d.IsCompleted(),
	}
}

func confirmationToDomain(dto ConfirmationDTO) (*ledger.DeliveryConfirmation, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
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

	return ledger.RestoreDeliveryConfirmation(
		id, orderID, courierID, dto.Pickup, items, dto.Completed,
	)
}
