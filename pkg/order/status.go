package order

// Label is a shopper-facing status shown on the account page.
type Label string

const (
	LabelCanceled          Label = "order canceled"
	LabelAwaitingPayment   Label = "awaiting payment"
	LabelPaymentComplete   Label = "payment complete"
	LabelPreparingShipment Label = "preparing shipment"
	LabelInTransit         Label = "in transit"
	LabelDelivered         Label = "delivered"
	// LabelReceived is shown when no other label applies, e.g. a pending
	// card order.
	LabelReceived Label = "order received"
)

// Overrides reports the client-side markers recorded against an order.
type Overrides interface {
	IsCancelled(orderID string) bool
	ExchangeRequested(orderID string) bool
	RefundRequested(orderID string) bool
}

// ResolveDisplayStatus derives the labels for o. Each rule is checked
// independently and in a fixed order, so an order can carry several labels;
// a paid order shows both "payment complete" and "preparing shipment". The
// result is never empty.
func ResolveDisplayStatus(o Order, ov Overrides) []Label {
	labels := make([]Label, 0, 2)
	if ov != nil && ov.IsCancelled(o.ID) {
		labels = append(labels, LabelCanceled)
	}
	switch o.Status {
	case StatusPending:
		if o.PaymentMethod == PaymentBankTransfer {
			labels = append(labels, LabelAwaitingPayment)
		}
	case StatusPaid:
		labels = append(labels, LabelPaymentComplete, LabelPreparingShipment)
	case StatusPreparing:
		labels = append(labels, LabelPreparingShipment)
	case StatusShipping:
		labels = append(labels, LabelInTransit)
	case StatusDelivered:
		labels = append(labels, LabelDelivered)
	}
	if len(labels) == 0 {
		labels = append(labels, LabelReceived)
	}
	return labels
}

// Requests are the after-sales requests shown in the order history view.
type Requests struct {
	ExchangeRequested bool `json:"exchangeRequested"`
	RefundRequested   bool `json:"refundRequested"`
}

// ResolveRequests reports the exchange and refund markers for o.
func ResolveRequests(o Order, ov Overrides) Requests {
	if ov == nil {
		return Requests{}
	}
	return Requests{
		ExchangeRequested: ov.ExchangeRequested(o.ID),
		RefundRequested:   ov.RefundRequested(o.ID),
	}
}

// View is an order as presented on the account page.
type View struct {
	Order
	DisplayStatus []Label `json:"displayStatus"`
	Requests
}

// NewView resolves labels and requests for o.
func NewView(o Order, ov Overrides) View {
	return View{
		Order:         o,
		DisplayStatus: ResolveDisplayStatus(o, ov),
		Requests:      ResolveRequests(o, ov),
	}
}
