package models

// ProductSnapshot is the product state captured on the cart line at the time
// it was added. Prices are charged from the snapshot, not live product data.
type ProductSnapshot struct {
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImageUrl  string  `json:"imageUrl"`
	IsBlocked bool    `json:"isBlocked"`
}

type CartLineItem struct {
	ProductId string          `json:"productId"`
	Product   ProductSnapshot `json:"product"`
	Quantity  int             `json:"quantity"`
}

// CheckoutCart is the backend's checkout snapshot: the cart contents plus the
// wallet balance that is authoritative for the rest of the session.
type CheckoutCart struct {
	Items         []CartLineItem `json:"items"`
	WalletBalance float64        `json:"walletBalance"`
}
