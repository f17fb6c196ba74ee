package cart

import "errors"

var (
	ErrInvalidItem     = errors.New("invalid item data")
	ErrNoSuchItem      = errors.New("no cart item at index")
	ErrNoPaymentMethod = errors.New("payment method not selected")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrNotLoggedIn     = errors.New("no logged in user")
)

// User-facing alert texts.
const (
	MsgInvalidItem     = "Error: Invalid item data. Please try again."
	MsgCartUnavailable = "Could not update your cart. Please try again."
	MsgNoPaymentSelect = "Payment method not found!"
	MsgChoosePayment   = "Please select a payment method."
	MsgEmptyCart       = "Your cart is empty!"
	MsgCheckoutFailed  = "Could not place your order. Please try again."
)
