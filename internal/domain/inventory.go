package domain

// InventoryEntry is one stack of a won item. Owned by the backend; the client
// holds a read-through cache invalidated after open/sell operations.
type InventoryEntry struct {
	ID       int        `json:"id"`
	Item     RewardItem `json:"item"`
	Quantity int        `json:"quantity"`
}

// BalanceUpdate is the common shape of sell/deposit responses: a message and
// the authoritative new balance that replaces the displayed value wholesale.
type BalanceUpdate struct {
	Message    string `json:"message"`
	NewBalance int    `json:"new_balance"`
}
