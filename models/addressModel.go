package models

// Address is loaded read-only here. Address management has its own API
// surface; checkout only snapshots the selected address onto the order.
type Address struct {
	ID        string `json:"id"`
	FullName  string `json:"fullName"`
	Building  string `json:"building"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	Pincode   string `json:"pincode"`
	Landmark  string `json:"landmark,omitempty"`
	IsDefault bool   `json:"isDefault"`
}
