package domain

// User is a shopper known to the store, together with the cart they are building.
type User struct {
	Username string
	Password string
	Cart     Cart
}

// Clone returns a copy of the user whose cart can be mutated independently.
func (u User) Clone() User {
	u.Cart = u.Cart.Clone()
	return u
}
