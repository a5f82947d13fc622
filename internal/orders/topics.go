package orders

const (
	TopicOrderPlaced   = "order.placed"
	TopicStatusChanged = "order.status.changed"
)

// Partition key = order id, so every event for one order keeps its order.
func PartitionKey(orderID string) []byte { return []byte(orderID) }
