package orders

const TopicOrderPlaced = "cart.order.placed"

// Partition key = session id, so one session's orders stay on one partition
// and are consumed in the order they were placed.
func PartitionKey(sessionID string) []byte {
	return []byte(sessionID)
}
