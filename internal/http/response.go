package http

import "shades-shop/internal/domain"

type BrandResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ProductResponse struct {
	ID          string   `json:"id"`
	CategoryID  string   `json:"categoryId"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	ImageURLs   []string `json:"imageUrls"`
}

type CartItemResponse struct {
	ID         string  `json:"id"`
	CategoryID string  `json:"categoryId"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
}

func brandsToResponse(brands []domain.Brand) []BrandResponse {
	resp := make([]BrandResponse, len(brands))
	for i := range brands {
		resp[i] = BrandResponse{ID: brands[i].ID, Name: brands[i].Name}
	}
	return resp
}

func productsToResponse(products []domain.Product) []ProductResponse {
	resp := make([]ProductResponse, len(products))
	for i, p := range products {
		images := p.ImageURLs
		if images == nil {
			images = []string{}
		}
		resp[i] = ProductResponse{
			ID:          p.ID,
			CategoryID:  p.CategoryID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			ImageURLs:   images,
		}
	}
	return resp
}

// cartToResponse never returns nil so an empty cart encodes as [].
func cartToResponse(cart domain.Cart) []CartItemResponse {
	resp := make([]CartItemResponse, len(cart))
	for i, item := range cart {
		resp[i] = CartItemResponse{
			ID:         item.ID,
			CategoryID: item.CategoryID,
			Name:       item.Name,
			Price:      item.Price,
			Quantity:   item.Quantity,
		}
	}
	return resp
}
