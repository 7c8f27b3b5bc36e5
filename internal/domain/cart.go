package domain

// CartItem is the cart projection of a Product: description and images are dropped and a
// quantity is attached. Fields are copied when the item is created and never re-synced.
type CartItem struct {
	ID         string
	CategoryID string
	Name       string
	Price      float64
	Quantity   int
}

// NewCartItem snapshots a product into a cart line with quantity 1.
func NewCartItem(p Product) CartItem {
	return CartItem{
		ID:         p.ID,
		CategoryID: p.CategoryID,
		Name:       p.Name,
		Price:      p.Price,
		Quantity:   1,
	}
}

// Cart is an ordered list of cart items holding at most one item per product id.
// Items keep insertion order.
type Cart []CartItem

// Clone returns a copy that shares no backing array with c. A nil cart clones to an empty one.
func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	copy(out, c)
	return out
}

// Index returns the position of the item for productID, or -1.
func (c Cart) Index(productID string) int {
	for i := range c {
		if c[i].ID == productID {
			return i
		}
	}
	return -1
}

// Contains reports whether the cart holds an item for productID.
func (c Cart) Contains(productID string) bool {
	return c.Index(productID) >= 0
}

// Add appends a new item for p, or bumps the quantity of the existing one in place.
func (c Cart) Add(p Product) Cart {
	if i := c.Index(p.ID); i >= 0 {
		c[i].Quantity++
		return c
	}
	return append(c, NewCartItem(p))
}

// SetQuantity overwrites the quantity of the item for productID. The value is stored as given;
// zero or negative quantities do not remove the item. It reports false if the item is absent.
func (c Cart) SetQuantity(productID string, quantity int) bool {
	i := c.Index(productID)
	if i < 0 {
		return false
	}
	c[i].Quantity = quantity
	return true
}

// Remove drops the item for productID keeping the order of the rest.
// It reports false if the item is absent.
func (c Cart) Remove(productID string) (Cart, bool) {
	i := c.Index(productID)
	if i < 0 {
		return c, false
	}
	return append(c[:i], c[i+1:]...), true
}
