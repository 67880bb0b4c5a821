package catalog

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/BM-ACADEMY/Anbunatureproducts-ecommerces/internal/domain"
)

// ErrInvalidAttributes wraps every structural complaint ValidateAttributes
// raises, so callers can classify the whole family as a validation failure.
var ErrInvalidAttributes = errors.New("invalid attributes")

func validPrice(price float64) bool {
	return !math.IsNaN(price) && price >= 0
}

// ValidateAttributes enforces the product write invariants on a full
// attribute payload: every group is named and carries at least one option,
// names are unique (case-insensitive), prices are valid, stock is untracked
// or non-negative, and, when any groups exist, at least one option across
// all groups carries a valid price.
//
// Incremental admin edits (a freshly added group that has no options yet) go
// through ValidateMutation instead, which tolerates empty groups.
func ValidateAttributes(groups []domain.AttributeGroup) error {
	if err := validateStructure(groups, false); err != nil {
		return err
	}
	return validatePriceInvariant(groups)
}

// ValidateMutation is the relaxed write check used by the incremental group
// and option mutators. Empty groups are allowed mid-edit; the priced-option
// invariant is only enforced once any option exists.
func ValidateMutation(groups []domain.AttributeGroup) error {
	if err := validateStructure(groups, true); err != nil {
		return err
	}
	for _, g := range groups {
		if len(g.Options) > 0 {
			return validatePriceInvariant(groups)
		}
	}
	return nil
}

func validateStructure(groups []domain.AttributeGroup, allowEmptyGroups bool) error {
	seenGroups := make(map[string]struct{}, len(groups))
	for _, g := range groups {
		if strings.TrimSpace(g.Name) == "" {
			return fmt.Errorf("%w: each attribute group must have a name", ErrInvalidAttributes)
		}
		folded := strings.ToLower(g.Name)
		if _, ok := seenGroups[folded]; ok {
			return fmt.Errorf("%w: duplicate attribute group %q", ErrInvalidAttributes, g.Name)
		}
		seenGroups[folded] = struct{}{}

		if len(g.Options) == 0 && !allowEmptyGroups {
			return fmt.Errorf("%w: attribute group %q must have at least one option", ErrInvalidAttributes, g.Name)
		}

		seenOptions := make(map[string]struct{}, len(g.Options))
		for _, opt := range g.Options {
			if strings.TrimSpace(opt.Name) == "" {
				return fmt.Errorf("%w: option in %q must have a name", ErrInvalidAttributes, g.Name)
			}
			foldedOpt := strings.ToLower(opt.Name)
			if _, ok := seenOptions[foldedOpt]; ok {
				return fmt.Errorf("%w: duplicate option %q in %q", ErrInvalidAttributes, opt.Name, g.Name)
			}
			seenOptions[foldedOpt] = struct{}{}

			if !validPrice(opt.Price) {
				return fmt.Errorf("%w: option %q in %q must have a valid price", ErrInvalidAttributes, opt.Name, g.Name)
			}
			if opt.Stock != nil && *opt.Stock < 0 {
				return fmt.Errorf("%w: stock in option %q for %q must be null or non-negative", ErrInvalidAttributes, opt.Name, g.Name)
			}
		}
	}
	return nil
}

func validatePriceInvariant(groups []domain.AttributeGroup) error {
	if len(groups) == 0 {
		return nil
	}
	for _, g := range groups {
		for _, opt := range g.Options {
			if validPrice(opt.Price) {
				return nil
			}
		}
	}
	return fmt.Errorf("%w: at least one attribute option must have a valid price", ErrInvalidAttributes)
}
