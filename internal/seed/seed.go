// Package seed holds the built-in dataset used to initialize empty collections.
package seed

import (
	_ "embed"
	"fmt"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"cottoncare/internal/domain"
)

//go:embed seed.yaml
var raw []byte

type seedUser struct {
	domain.User `yaml:",inline"`
	Password    string `yaml:"password"`
}

type seedOrder struct {
	domain.Order `yaml:",inline"`
	AgeDays      int `yaml:"ageDays"`
}

type dataset struct {
	Products []domain.Product `yaml:"products"`
	Users    []seedUser       `yaml:"users"`
	Orders   []seedOrder      `yaml:"orders"`
}

// Cost is the bcrypt cost used for seeded credentials.
var Cost = bcrypt.DefaultCost

var (
	once   sync.Once
	parsed dataset
	users  []domain.User
	errSet error
)

func load() {
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		errSet = fmt.Errorf("parse seed.yaml: %w", err)
		return
	}
	for _, su := range parsed.Users {
		h, err := bcrypt.GenerateFromPassword([]byte(su.Password), Cost)
		if err != nil {
			errSet = fmt.Errorf("hash seed user %s: %w", su.Email, err)
			return
		}
		u := su.User
		u.Hash = string(h)
		users = append(users, u)
	}
}

// Err reports whether the embedded dataset failed to parse.
func Err() error {
	once.Do(load)
	return errSet
}

func Products() []domain.Product {
	once.Do(load)
	out := make([]domain.Product, len(parsed.Products))
	for i, p := range parsed.Products {
		p.Images = append([]string(nil), p.Images...)
		p.SuitableFor = append([]string{}, p.SuitableFor...)
		out[i] = p
	}
	return out
}

func Users() []domain.User {
	once.Do(load)
	out := make([]domain.User, len(users))
	for i, u := range users {
		if u.Address != nil {
			a := *u.Address
			u.Address = &a
		}
		out[i] = u
	}
	return out
}

// Orders returns the seeded history, most recent first, dated relative to now.
func Orders() []domain.Order {
	once.Do(load)
	now := time.Now().UTC()
	out := make([]domain.Order, len(parsed.Orders))
	for i, so := range parsed.Orders {
		o := so.Order
		o.Items = append([]domain.OrderItem(nil), o.Items...)
		o.OrderDate = now.Add(-time.Duration(so.AgeDays) * 24 * time.Hour)
		out[i] = o
	}
	return out
}
