package enum

// PaymentMode represents the payment method recorded on a receipt.
// The set is enforced by the submitting client, not by the server; unknown
// values are stored and rendered as-is.
type PaymentMode string

const (
	PaymentModeUPI        PaymentMode = "UPI"
	PaymentModeCash       PaymentMode = "Cash"
	PaymentModeCard       PaymentMode = "Card"
	PaymentModeNetBanking PaymentMode = "Net Banking"
)

func (m PaymentMode) String() string {
	return string(m)
}

// IsValid reports whether the mode is one of the known payment modes.
func (m PaymentMode) IsValid() bool {
	switch m {
	case PaymentModeUPI, PaymentModeCash, PaymentModeCard, PaymentModeNetBanking:
		return true
	}
	return false
}
