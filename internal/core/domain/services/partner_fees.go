package services

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/partner"

	"github.com/shopspring/decimal"
)

// VATRate is the fixed value-added tax rate applied on top of partner fees.
var VATRate = decimal.NewFromFloat(0.14)

// PartnerFeeConfig holds the fee terms agreed with a marketplace partner.
type PartnerFeeConfig struct {
	// Commission is the flat commission owed to the partner per order.
	Commission kernel.Money

	// OnlineFee is the additional processing fee owed when the order's
	// payment channel is online. Ignored for cash-channel orders.
	OnlineFee kernel.Money
}

// PartnerFeeCalculator computes the fee owed on a marketplace partner order.
//
// Fee formula: (commission + onlineFee) × (1 + VATRate), where onlineFee
// participates only for online-channel orders. The payment mode is Cash when
// a cash collection step runs for the order at dispatch (partner order with
// an outstanding amount), else Online.
type PartnerFeeCalculator struct{}

// NewPartnerFeeCalculator creates a new PartnerFeeCalculator instance.
func NewPartnerFeeCalculator() PartnerFeeCalculator {
	return PartnerFeeCalculator{}
}

// ComputeFee returns the partner fee including tax and the payment mode for
// the order's partner transaction.
//
// Parameters:
//   - o: the partner order (the caller guarantees o.HasPartner())
//   - cfg: the partner's fee configuration
//   - cashCollected: whether a cash collection step runs for this order
func (PartnerFeeCalculator) ComputeFee(
	o *order.Order,
	cfg PartnerFeeConfig,
	cashCollected bool,
) (kernel.Money, partner.PaymentMode, error) {
	if err := o.Validate(); err != nil {
		return kernel.Money{}, partner.ModeUnknown, err
	}

	base := cfg.Commission.Amount()
	if o.Channel() == order.ChannelOnline {
		base = base.Add(cfg.OnlineFee.Amount())
	}

	fee, err := kernel.NewMoney(base.Mul(decimal.NewFromInt(1).Add(VATRate)))
	if err != nil {
		return kernel.Money{}, partner.ModeUnknown, err
	}

	mode := partner.ModeOnline
	if cashCollected {
		mode = partner.ModeCash
	}
	return fee, mode, nil
}
