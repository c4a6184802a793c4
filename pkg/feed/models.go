package feed

// MessageType defines the type of a feed message.
type MessageType string

const (
	// MessageTypeTransactionReceived is for messages announcing a simulated
	// incoming transaction.
	MessageTypeTransactionReceived MessageType = "transactionReceived"

	// MessageTypeLimitReached is for the notification emitted when the
	// balance cap stops the simulator.
	MessageTypeLimitReached MessageType = "limitReached"
)

// Message represents a generic feed message.
type Message struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload"`
}

// TransactionReceivedPayload is the payload for a transactionReceived message.
type TransactionReceivedPayload struct {
	Username      string  `json:"username"`
	TransactionID string  `json:"transaction_id"`
	Amount        float64 `json:"amount"`
	NewBalance    float64 `json:"new_balance"`
	Commission    float64 `json:"commission"`
}

// LimitReachedPayload is the payload for a limitReached message.
type LimitReachedPayload struct {
	Username string  `json:"username"`
	Balance  float64 `json:"balance"`
}
