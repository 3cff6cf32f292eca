package models

import (
	"time"
)

type Customer struct {
	ID                   int64      `json:"_id"`
	Username             string     `json:"username"`
	Password             string     `json:"-"` // Store hashed password
	Email                string     `json:"email"`
	Name                 string     `json:"name"`
	Contact              string     `json:"contact"`
	PlayerID             string     `json:"playerId,omitempty"`
	ResetPasswordToken   string     `json:"-"`
	ResetPasswordExpires *time.Time `json:"-"`
	CreatedAt            time.Time  `json:"created_at"`
}

type ItemSize struct {
	Size  string  `json:"size"`
	Price float64 `json:"price"`
}

type Review struct {
	ID           int64     `json:"id"`
	CustomerName string    `json:"customerName"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Item struct {
	ID            int64      `json:"_id"`
	Name          string     `json:"name"`
	Category      string     `json:"category"`
	Image         string     `json:"image"`
	Description   string     `json:"description"`
	Price         float64    `json:"price"` // Base price; sizes may override
	Sizes         []ItemSize `json:"sizes,omitempty"`
	FavoriteCount int        `json:"favoriteCount"`
	SoldCount     int        `json:"soldCount"`
	Reviews       []Review   `json:"reviews,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// CartLine is one (item, size) entry in a cart. Size is "" when the item has
// no size selection; price is a snapshot resolved when the line was written.
type CartLine struct {
	ItemID   int64   `json:"itemId"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Size     string  `json:"size,omitempty"`
	Price    float64 `json:"price"`
}

type Cart struct {
	ID     int64      `json:"id"`
	UserID int64      `json:"userId"`
	Items  []CartLine `json:"items"`
}

type DeliveryAddress struct {
	Building string `json:"building"`
	Floor    string `json:"floor,omitempty"`
	Room     string `json:"room,omitempty"`
}

type OrderLine struct {
	ItemID   int64   `json:"itemId"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Size     string  `json:"size,omitempty"`
	Price    float64 `json:"price"`
}

// Order is an immutable checkout snapshot. Customer name/contact/username are
// denormalized at creation time so later profile edits do not rewrite history.
type Order struct {
	ID              int64            `json:"_id"`
	OrderRef        string           `json:"orderRef"` // Public "A7X9..." ID
	UserID          int64            `json:"userId"`
	CustomerName    string           `json:"customerName"`
	CustomerContact string           `json:"customerContact"`
	Username        string           `json:"username"`
	BillingDate     time.Time        `json:"billingDate"`
	TotalAmount     float64          `json:"totalAmount"`
	PaymentMethod   string           `json:"paymentMethod"`
	Status          string           `json:"status"`
	CartItems       []OrderLine      `json:"cartItems"`
	DeliveryAddress *DeliveryAddress `json:"deliveryAddress,omitempty"`
	Pickup          bool             `json:"pickup"`
	ProofOfDelivery string           `json:"proofOfDelivery,omitempty"`
}

type TicketReply struct {
	ID        int64     `json:"id"`
	Message   string    `json:"message"`
	Sender    string    `json:"sender"`
	CreatedAt time.Time `json:"createdAt"`
}

type Ticket struct {
	ID               int64         `json:"_id"`
	OrderID          int64         `json:"orderId"`
	CustomerID       int64         `json:"customerId"`
	Reason           string        `json:"reason"`
	IssueDescription string        `json:"issueDescription"`
	Solution         string        `json:"solution"`
	ProofImage       string        `json:"proofImage,omitempty"`
	Status           string        `json:"status"`
	Replies          []TicketReply `json:"replies,omitempty"`
	CreatedAt        time.Time     `json:"createdAt"`
}

type Favorite struct {
	ID     int64 `json:"_id"`
	UserID int64 `json:"userId"`
	ItemID int64 `json:"itemId"`
	Item   *Item `json:"item,omitempty"`
}

type ProfileImage struct {
	UserID          int64  `json:"userId"`
	ProfileImageURL string `json:"profileImageUrl"`
}
