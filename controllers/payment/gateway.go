package paymentControllers

import "context"

// Gateway is the narrow surface the order flow needs from a payment
// provider. Keeping it this small lets tests swap in a stub.
type Gateway interface {
	// CreatePayment starts a payment of amount (in rupees) for the given
	// order and returns a redirect URL plus the provider's reference.
	CreatePayment(ctx context.Context, orderID string, amount float64) (redirectURL, ref string, err error)

	// Status reports whether the payment behind ref has completed.
	Status(ctx context.Context, ref string) (paid bool, err error)
}
