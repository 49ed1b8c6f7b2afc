package entity

// Product is an inventory line of the business.
type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Cost     float64 `json:"cost"`
	Stock    int     `json:"stock"`
}

type Wig struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Type   string  `json:"type"`
	Length string  `json:"length"`
	Color  string  `json:"color"`
	Price  float64 `json:"price"`
	Stock  int     `json:"stock"`
}

type Pastry struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Stock     int     `json:"stock"`
	BakedAt   string  `json:"bakedAt,omitempty"`
	ExpiresAt string  `json:"expiresAt,omitempty"`
}

// LineItem is one priced row of a sale or an invoice.
type LineItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

type Sale struct {
	ID         string     `json:"id"`
	Date       string     `json:"date"`
	CustomerID string     `json:"customerId,omitempty"`
	Items      []LineItem `json:"items"`
	Total      float64    `json:"total"`
}

type Customer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

type Debt struct {
	ID           string  `json:"id"`
	CustomerName string  `json:"customerName"`
	Amount       float64 `json:"amount"`
	DueDate      string  `json:"dueDate"`
	Paid         bool    `json:"paid"`
}

type Invoice struct {
	ID           string     `json:"id"`
	Number       string     `json:"number"`
	CustomerName string     `json:"customerName"`
	Items        []LineItem `json:"items"`
	Total        float64    `json:"total"`
	IssuedAt     string     `json:"issuedAt"`
	Status       string     `json:"status"`
}

// StorySection is one block of the public "about us" page.
type StorySection struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type Testimonial struct {
	ID      string `json:"id"`
	Author  string `json:"author"`
	Content string `json:"content"`
	Rating  int    `json:"rating"`
}

type AdvertisingPhrase struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}
