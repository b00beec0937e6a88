package payment

// EventCheckoutCompleted is the only event type this system reacts to;
// anything else is acknowledged and ignored.
const EventCheckoutCompleted = "checkout.session.completed"

// Event is the decoded webhook body. Metadata is round-tripped from the
// checkout session we created, which is how the order id comes back.
type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID       string            `json:"id"`
			Metadata map[string]string `json:"metadata"`
		} `json:"object"`
	} `json:"data"`
}
