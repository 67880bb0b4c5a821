package catalog

import (
	"errors"

	"github.com/BM-ACADEMY/Anbunatureproducts-ecommerces/internal/domain"
)

var (
	// ErrNoAttributesDefined means the product has no attribute groups at
	// all; its price would have to come from a base-price path this system
	// does not carry.
	ErrNoAttributesDefined = errors.New("product defines no attributes")
	// ErrNoPriceAvailable means groups exist but the selection resolved no
	// option, so no price could be derived.
	ErrNoPriceAvailable = errors.New("no price available for the given selection")
)

// Resolution is the price/stock/unit triple derived from a selection. A nil
// Stock means the combined stock is untracked.
type Resolution struct {
	Price float64 `json:"price"`
	Stock *int64  `json:"stock"`
	Unit  string  `json:"unit"`
}

// Resolve computes the aggregate price, representative stock and display unit
// for a selection (group name -> option name). It is a pure function, safe to
// call repeatedly and concurrently.
//
// Price sums over every resolved option and is therefore independent of group
// order. Stock and unit are NOT: the first resolved option in declared group
// order supplies the combined stock (nil stock means untracked), and the
// first resolved option with a non-empty unit supplies the unit. Stock from
// later groups is never merged, summed or min'ed. This order-dependent
// first-match rule is intentional and pinned by tests.
//
// A group absent from the selection is treated as unselected, as is a
// selection naming an unknown option; the cart layer is where invalid option
// names become hard errors.
func Resolve(p *domain.Product, selection map[string]string) (Resolution, error) {
	if len(p.AttributeGroups) == 0 {
		return Resolution{}, ErrNoAttributesDefined
	}

	var res Resolution
	priced := false
	stockSet := false

	for i := range p.AttributeGroups {
		group := &p.AttributeGroups[i]
		optName, ok := selection[group.Name]
		if !ok {
			continue
		}
		opt := FindOption(group, optName)
		if opt == nil {
			continue
		}

		res.Price += opt.Price
		priced = true

		if !stockSet {
			if opt.Stock != nil {
				stock := *opt.Stock
				res.Stock = &stock
			}
			stockSet = true
		}
		if res.Unit == "" && opt.Unit != "" {
			res.Unit = opt.Unit
		}
	}

	if !priced {
		return Resolution{}, ErrNoPriceAvailable
	}
	return res, nil
}
