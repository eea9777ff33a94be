package service

// EventType defines the type of event
type EventType string

const (
	EventCustomerCreated    EventType = "customer_created"
	EventCustomerUpdated    EventType = "customer_updated"
	EventCustomerDeleted    EventType = "customer_deleted"
	EventProductCreated     EventType = "product_created"
	EventProductUpdated     EventType = "product_updated"
	EventProductDeleted     EventType = "product_deleted"
	EventMeasurementCreated EventType = "measurement_created"
	EventMeasurementUpdated EventType = "measurement_updated"
	EventMeasurementDeleted EventType = "measurement_deleted"
	EventOrderCreated       EventType = "order_created"
	EventOrderUpdated       EventType = "order_updated"
	EventOrderDeleted       EventType = "order_deleted"
	EventOrderItemAdded     EventType = "order_item_added"
)

// Event represents an event that occurred in the system
type Event struct {
	Type    EventType   `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// EventBus allows publishing and subscribing to events
type EventBus struct {
	subscribers []chan<- Event
}

// NewEventBus creates a new event bus
func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make([]chan<- Event, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (eb *EventBus) Subscribe(ch chan<- Event) {
	eb.subscribers = append(eb.subscribers, ch)
}

// Publish sends an event to all subscribers
func (eb *EventBus) Publish(event Event) {
	for _, ch := range eb.subscribers {
		select {
		case ch <- event:
		default:
			// Subscriber is slow, skip
		}
	}
}
