package domain

// Brand groups products; products reference it through CategoryID.
type Brand struct {
	ID   string
	Name string
}

// Product is an immutable catalog entry.
type Product struct {
	ID          string
	CategoryID  string
	Name        string
	Description string
	Price       float64
	ImageURLs   []string
}
