package tariffs

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mkraev/neurocontent-bot/types"
	"gopkg.in/yaml.v3"
)

var ErrUnknownTariff = errors.New("unknown tariff")

// Catalog is a fixed set of purchasable tariffs. It is built once at startup
// and never mutated; All returns tariffs in declaration order so the
// purchase menu stays stable between renders.
type Catalog struct {
	order []types.Tariff
	byKey map[string]types.Tariff
}

func Default() *Catalog {
	c, _ := New([]types.Tariff{
		{Key: "start", Title: "🟢 Start", Price: 199, Limit: 50},
		{Key: "pro", Title: "🔵 Pro", Price: 499, Limit: 200},
		{Key: "max", Title: "🟣 Max", Price: 999, Limit: 999999},
	})
	return c
}

func New(list []types.Tariff) (*Catalog, error) {
	if len(list) == 0 {
		return nil, errors.New("tariff catalog is empty")
	}
	c := &Catalog{byKey: make(map[string]types.Tariff, len(list))}
	for _, t := range list {
		t.Key = strings.TrimSpace(t.Key)
		if t.Key == "" {
			return nil, errors.New("tariff with empty key")
		}
		if _, dup := c.byKey[t.Key]; dup {
			return nil, fmt.Errorf("duplicate tariff key %q", t.Key)
		}
		if t.Limit <= 0 {
			return nil, fmt.Errorf("tariff %q: non-positive limit", t.Key)
		}
		c.order = append(c.order, t)
		c.byKey[t.Key] = t
	}
	return c, nil
}

// Load reads a catalog from a YAML file; a missing path falls back to the
// built-in defaults.
func Load(path string) (*Catalog, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	var list []types.Tariff
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse tariffs file %s: %w", path, err)
	}
	return New(list)
}

func (c *Catalog) Get(key string) (types.Tariff, error) {
	t, ok := c.byKey[strings.TrimSpace(key)]
	if !ok {
		return types.Tariff{}, fmt.Errorf("%w: %q", ErrUnknownTariff, key)
	}
	return t, nil
}

func (c *Catalog) All() []types.Tariff {
	out := make([]types.Tariff, len(c.order))
	copy(out, c.order)
	return out
}
