// Package partnerrepo provides persistence for partner transactions and
// partner fee configurations.
package partnerrepo

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/partner"
)

// TransactionDTO represents the database structure for partner fee accruals.
// The unique index on the idempotency token enforces one accrual per order.
type TransactionDTO struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID          uuid.UUID       `gorm:"type:uuid;index"`
	PartnerID        uuid.UUID       `gorm:"type:uuid;index"`
	Fee              decimal.Decimal `gorm:"type:numeric"`
	PaymentMode      int
	IdempotencyToken string `gorm:"uniqueIndex"`
}

// TableName specifies the database table name for partner transactions.
func (TransactionDTO) TableName() string {
	return "partner_transactions"
}

// FeeConfigDTO represents a partner's fee configuration row.
type FeeConfigDTO struct {
	PartnerID  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Commission decimal.Decimal `gorm:"type:numeric"`
	OnlineFee  decimal.Decimal `gorm:"type:numeric"`
}

// TableName specifies the database table name for partner fee configurations.
func (FeeConfigDTO) TableName() string {
	return "partner_fee_configs"
}

// fromDomain converts a partner transaction to its database representation.
func fromDomain(tx *partner.Transaction) TransactionDTO {
	return TransactionDTO{
		ID:               tx.ID().Bytes(),
		OrderID:          tx.OrderID().Bytes(),
		PartnerID:        tx.PartnerID().Bytes(),
		Fee:              tx.Fee().Amount(),
		PaymentMode:      int(tx.PaymentMode()),
		IdempotencyToken: tx.IdempotencyToken(),
	}
}

// toDomain converts a database DTO to a partner transaction using RestoreTransaction.
func toDomain(dto TransactionDTO) (*partner.Transaction, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	partnerID, err := kernel.UUIDFromBytes(dto.PartnerID[:])
	if err != nil {
		return nil, err
	}

	fee, err := kernel.NewMoney(dto.Fee)
	if err != nil {
		return nil, err
	}

	return partner.RestoreTransaction(
		id, orderID, partnerID, fee, partner.PaymentMode(dto.PaymentMode),
	)
}
