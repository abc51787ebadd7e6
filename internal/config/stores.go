package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"picklist/internal"
)

// Store is one storefront as the warehouse sees it. A store may span several
// accounts on the shipping platform (Amazon USA and Canada, for example).
type Store struct {
	Name             string                    `yaml:"name" validate:"required"`
	StoreIDs         []int                     `yaml:"storeIds" validate:"required,min=1,dive,gt=0"`
	Statuses         []string                  `yaml:"statuses" validate:"required,min=1,dive,oneof=awaiting_payment awaiting_shipment pending_fulfillment on_hold shipped cancelled"`
	OrderNumberField internal.OrderNumberField `yaml:"orderNumberField" validate:"omitempty,oneof=orderNumber orderKey"`
}

// Catalog is the contents of the stores file: the storefronts to sync and
// the curated SKU corrections.
type Catalog struct {
	Stores    []Store           `yaml:"stores" validate:"required,min=1,unique=Name,dive"`
	Revisions map[string]string `yaml:"revisions" validate:"dive,keys,required,endkeys,required"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func LoadCatalog(path string) (Catalog, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read stores file: %w", err)
	}
	return ParseCatalog(blob)
}

func ParseCatalog(blob []byte) (Catalog, error) {
	var catalog Catalog
	if err := yaml.Unmarshal(blob, &catalog); err != nil {
		return Catalog{}, fmt.Errorf("parse stores file: %w", err)
	}
	for i := range catalog.Stores {
		if catalog.Stores[i].OrderNumberField == "" {
			catalog.Stores[i].OrderNumberField = internal.FieldOrderNumber
		}
	}
	if err := validate.Struct(catalog); err != nil {
		return Catalog{}, fmt.Errorf("invalid stores file: %w", err)
	}
	return catalog, nil
}

func (c Catalog) StoreByName(name string) (Store, bool) {
	for _, s := range c.Stores {
		if s.Name == name {
			return s, true
		}
	}
	return Store{}, false
}
