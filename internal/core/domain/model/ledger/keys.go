package ledger

import "fulfillment/internal/core/domain/model/kernel"

// Idempotency keys for dispatch-time entries. Each key is unique per
// order so a retried dispatch finds the earlier row.

// PaymentKey identifies the customer payment entry for an order.
func PaymentKey(orderID kernel.UUID) string {
	return "PAY::" + orderID.String()
}

// FreightKey identifies the courier freight accrual entry for an order.
func FreightKey(orderID kernel.UUID) string {
	return "OFD::" + orderID.String() + "::freight"
}

// PartnerCashKey identifies the cash collection entry recorded when a
// partner order is dispatched with money still outstanding.
func PartnerCashKey(orderID kernel.UUID) string {
	return "SPCASH::" + orderID.String()
}

// SingleSettlementKey identifies the clearing entry written when one
// order's courier transaction is settled on its own.
func SingleSettlementKey(orderID kernel.UUID) string {
	return "SETTLE::" + orderID.String()
}

// BatchSettlementKey identifies the consolidated clearing entry for one
// settlement run over a courier's unsettled transactions. Runs spanning
// several companies write one entry per company.
func BatchSettlementKey(courierID, companyID, batchID kernel.UUID) string {
	return "SETTLE::" + courierID.String() + "::" + companyID.String() + "::" + batchID.String()
}
