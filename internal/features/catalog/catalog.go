// Package catalog хранит прайс пакетов UC.
// Таблица задаётся по умолчанию в коде и может быть переопределена YAML-файлом
// (PRICES_FILE). Reload перечитывает файл без перезапуска бота.
package catalog

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"serotonyl.ru/topup-bot/internal/common"
)

// TokenSuffix дописывается к id пакета в кнопке: "60" → "60uc".
const TokenSuffix = "uc"

// Package: пакет UC с ценой по прайсу.
type Package struct {
	ID    string
	Price decimal.Decimal
}

// Token возвращает токен кнопки для пакета.
func (p Package) Token() string {
	return p.ID + TokenSuffix
}

// DefaultPackages: прайс по умолчанию.
func DefaultPackages() []Package {
	return []Package{
		{ID: "60", Price: decimal.RequireFromString("90.06")},
		{ID: "325", Price: decimal.RequireFromString("450.31")},
		{ID: "660", Price: decimal.RequireFromString("900.61")},
		{ID: "1800", Price: decimal.RequireFromString("2251.53")},
		{ID: "3850", Price: decimal.RequireFromString("4503.05")},
		{ID: "8100", Price: decimal.RequireFromString("9006.10")},
	}
}

// fileFormat описывает файл прайса:
//
//	packages:
//	  - id: "60"
//	    price: "90.06"
type fileFormat struct {
	Packages []struct {
		ID    string `yaml:"id"`
		Price string `yaml:"price"`
	} `yaml:"packages"`
}

// Catalog: потокобезопасный прайс.
type Catalog struct {
	mu        sync.RWMutex
	packages  []Package
	index     map[string]decimal.Decimal
	path      string
	currency  string
	unitPrice decimal.Decimal
}

// New создаёт прайс. Если path не пустой, таблица сразу читается из файла.
func New(path, currency string, unitPrice decimal.Decimal) (*Catalog, error) {
	c := &Catalog{path: path, currency: currency, unitPrice: unitPrice}
	c.set(DefaultPackages())
	if path != "" {
		if err := c.Reload(); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Reload перечитывает файл прайса. При ошибке остаётся прежняя таблица.
func (c *Catalog) Reload() error {
	if c.path == "" {
		return nil
	}
	data, err := os.ReadFile(c.path)
	if err != nil {
		return fmt.Errorf("ошибка чтения прайса %s: %w", c.path, err)
	}
	pkgs, err := parse(data)
	if err != nil {
		return fmt.Errorf("ошибка разбора прайса %s: %w", c.path, err)
	}
	c.set(pkgs)

	log.WithFields(log.Fields{
		"component": "catalog",
		"packages":  len(pkgs),
		"path":      c.path,
	}).Info("Прайс загружен")
	return nil
}

func parse(data []byte) ([]Package, error) {
	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if len(f.Packages) == 0 {
		return nil, fmt.Errorf("прайс пуст")
	}

	seen := make(map[string]bool, len(f.Packages))
	pkgs := make([]Package, 0, len(f.Packages))
	for _, p := range f.Packages {
		id := strings.TrimSpace(p.ID)
		if id == "" {
			return nil, fmt.Errorf("пакет без id")
		}
		if seen[id] {
			return nil, fmt.Errorf("пакет %s указан дважды", id)
		}
		price, err := decimal.NewFromString(strings.TrimSpace(p.Price))
		if err != nil {
			return nil, fmt.Errorf("пакет %s: некорректная цена %q", id, p.Price)
		}
		if !price.IsPositive() {
			return nil, fmt.Errorf("пакет %s: цена должна быть положительной", id)
		}
		seen[id] = true
		pkgs = append(pkgs, Package{ID: id, Price: price})
	}
	return pkgs, nil
}

func (c *Catalog) set(pkgs []Package) {
	index := make(map[string]decimal.Decimal, len(pkgs))
	for _, p := range pkgs {
		index[p.ID] = p.Price
	}
	c.mu.Lock()
	c.packages = pkgs
	c.index = index
	c.mu.Unlock()
}

// Price возвращает цену пакета по прайсу.
func (c *Catalog) Price(id string) (decimal.Decimal, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.index[id]
	return p, ok
}

// Packages возвращает копию прайса в порядке показа.
func (c *Catalog) Packages() []Package {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Package, len(c.packages))
	copy(out, c.packages)
	return out
}

// PackageByToken находит пакет по токену кнопки ("660uc").
func (c *Catalog) PackageByToken(token string) (Package, bool) {
	if !strings.HasSuffix(token, TokenSuffix) {
		return Package{}, false
	}
	id := strings.TrimSuffix(token, TokenSuffix)
	price, ok := c.Price(id)
	if !ok {
		return Package{}, false
	}
	return Package{ID: id, Price: price}, true
}

// Format форматирует сумму в валюте прайса: "90.06 ₽".
func (c *Catalog) Format(amount decimal.Decimal) string {
	return common.FormatMoney(amount, c.currency)
}

// Quote считает стоимость произвольного количества UC.
func (c *Catalog) Quote(units int64) decimal.Decimal {
	return decimal.NewFromInt(units).Mul(c.unitPrice)
}
