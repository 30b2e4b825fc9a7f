package models

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusPreparing  OrderStatus = "preparing"
	StatusReady      OrderStatus = "ready"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

var transitions = map[OrderStatus][]OrderStatus{
	StatusPending:    {StatusProcessing, StatusPreparing, StatusReady, StatusCompleted, StatusCancelled},
	StatusProcessing: {StatusPreparing, StatusReady, StatusCompleted, StatusCancelled},
	StatusPreparing:  {StatusProcessing, StatusReady, StatusCompleted, StatusCancelled},
	StatusReady:      {StatusProcessing, StatusPreparing, StatusCompleted, StatusCancelled},
	StatusCompleted:  nil,
	StatusCancelled:  nil,
}

func ParseStatus(s string) (OrderStatus, bool) {
	st := OrderStatus(s)
	_, ok := transitions[st]
	return st, ok
}

func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo reports whether next is reachable from s in one step.
// Staying in the same status is not a transition.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, st := range transitions[s] {
		if st == next {
			return true
		}
	}
	return false
}

// KitchenStatuses are the statuses shown on the kitchen monitor.
func KitchenStatuses() []OrderStatus {
	return []OrderStatus{StatusPending, StatusProcessing, StatusPreparing}
}

func ActiveStatuses() []OrderStatus {
	return []OrderStatus{StatusPending, StatusProcessing, StatusPreparing, StatusReady}
}
