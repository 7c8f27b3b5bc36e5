package seed

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"shades-shop/internal/domain"
	"shades-shop/internal/repository"
	"shades-shop/internal/storage"
)

//go:embed data/*.json
var embedded embed.FS

const (
	usersFile    = "users.json"
	brandsFile   = "brands.json"
	productsFile = "products.json"
)

// Dataset is the startup snapshot of users, brands and products.
type Dataset struct {
	Users    []domain.User
	Brands   []domain.Brand
	Products []domain.Product
}

// Loader reads a Dataset from the embedded default, a local directory, or an S3 prefix.
type Loader struct {
	objects storage.Service
	logger  *logrus.Logger
}

// NewLoader builds a Loader. objects may be nil when no s3:// source is used.
func NewLoader(objects storage.Service, logger *logrus.Logger) *Loader {
	if logger == nil {
		logger = logrus.New()
	}
	return &Loader{objects: objects, logger: logger}
}

// Load reads users.json, brands.json and products.json from source. An empty source selects
// the embedded dataset; s3://bucket/prefix reads objects under prefix; anything else is a
// directory path.
func (l *Loader) Load(ctx context.Context, source string) (*Dataset, error) {
	read, err := l.reader(source)
	if err != nil {
		return nil, err
	}

	var (
		users    []userRecord
		brands   []brandRecord
		products []productRecord
	)
	if err := decodeFile(ctx, read, usersFile, &users); err != nil {
		return nil, err
	}
	if err := decodeFile(ctx, read, brandsFile, &brands); err != nil {
		return nil, err
	}
	if err := decodeFile(ctx, read, productsFile, &products); err != nil {
		return nil, err
	}

	ds, err := build(users, brands, products)
	if err != nil {
		return nil, err
	}

	l.logger.WithFields(logrus.Fields{
		"source":   describeSource(source),
		"users":    len(ds.Users),
		"brands":   len(ds.Brands),
		"products": len(ds.Products),
	}).Info("seed data loaded")
	return ds, nil
}

// Apply writes every seeded user into the directory.
func (d *Dataset) Apply(ctx context.Context, users repository.UserRepository) error {
	for _, u := range d.Users {
		if err := users.Upsert(ctx, u); err != nil {
			return fmt.Errorf("seed user %s: %w", u.Username, err)
		}
	}
	return nil
}

type readFunc func(ctx context.Context, name string) ([]byte, error)

func (l *Loader) reader(source string) (readFunc, error) {
	switch {
	case source == "":
		return func(_ context.Context, name string) ([]byte, error) {
			return fs.ReadFile(embedded, "data/"+name)
		}, nil
	case storage.IsLocation(source):
		if l.objects == nil {
			return nil, fmt.Errorf("seed source %s requires object storage", source)
		}
		loc, err := storage.ParseLocation(source)
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context, name string) ([]byte, error) {
			return l.objects.Fetch(ctx, loc.Bucket, loc.Key(name))
		}, nil
	default:
		return func(_ context.Context, name string) ([]byte, error) {
			return os.ReadFile(filepath.Join(source, name))
		}, nil
	}
}

func decodeFile(ctx context.Context, read readFunc, name string, dst any) error {
	raw, err := read(ctx, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

func describeSource(source string) string {
	if source == "" {
		return "embedded"
	}
	return source
}

type userRecord struct {
	Login struct {
		Username string `json:"username"`
		Password string `json:"password"`
	} `json:"login"`
	Cart []cartItemRecord `json:"cart"`
}

type cartItemRecord struct {
	ID         string  `json:"id"`
	CategoryID string  `json:"categoryId"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
}

type brandRecord struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type productRecord struct {
	ID          string   `json:"id"`
	CategoryID  string   `json:"categoryId"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	ImageURLs   []string `json:"imageUrls"`
}

func build(users []userRecord, brands []brandRecord, products []productRecord) (*Dataset, error) {
	ds := &Dataset{
		Users:    make([]domain.User, 0, len(users)),
		Brands:   make([]domain.Brand, 0, len(brands)),
		Products: make([]domain.Product, 0, len(products)),
	}

	brandIDs := make(map[string]struct{}, len(brands))
	for _, b := range brands {
		if b.ID == "" {
			return nil, errors.New("brand without id")
		}
		if _, dup := brandIDs[b.ID]; dup {
			return nil, fmt.Errorf("duplicate brand id %q", b.ID)
		}
		brandIDs[b.ID] = struct{}{}
		ds.Brands = append(ds.Brands, domain.Brand{ID: b.ID, Name: b.Name})
	}

	productIDs := make(map[string]struct{}, len(products))
	for _, p := range products {
		if p.ID == "" {
			return nil, errors.New("product without id")
		}
		if _, dup := productIDs[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %q", p.ID)
		}
		productIDs[p.ID] = struct{}{}

		images := p.ImageURLs
		if images == nil {
			images = []string{}
		}
		ds.Products = append(ds.Products, domain.Product{
			ID:          p.ID,
			CategoryID:  p.CategoryID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			ImageURLs:   images,
		})
	}

	usernames := make(map[string]struct{}, len(users))
	for _, u := range users {
		name := u.Login.Username
		if name == "" {
			return nil, errors.New("user without login.username")
		}
		if _, dup := usernames[name]; dup {
			return nil, fmt.Errorf("duplicate username %q", name)
		}
		usernames[name] = struct{}{}

		cart := make(domain.Cart, 0, len(u.Cart))
		for _, item := range u.Cart {
			if _, ok := productIDs[item.ID]; !ok {
				return nil, fmt.Errorf("user %s: cart references unknown product %q", name, item.ID)
			}
			if cart.Contains(item.ID) {
				return nil, fmt.Errorf("user %s: product %q appears twice in cart", name, item.ID)
			}
			cart = append(cart, domain.CartItem{
				ID:         item.ID,
				CategoryID: item.CategoryID,
				Name:       item.Name,
				Price:      item.Price,
				Quantity:   item.Quantity,
			})
		}

		ds.Users = append(ds.Users, domain.User{
			Username: name,
			Password: u.Login.Password,
			Cart:     cart,
		})
	}

	return ds, nil
}
