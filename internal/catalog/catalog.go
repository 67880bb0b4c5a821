// Package catalog holds the pure attribute logic of the storefront: group and
// option mutation, write-time validation, and selection resolution. Nothing
// here touches storage; services load a product, apply these functions and
// persist the result.
package catalog

import (
	"errors"
	"strings"

	"github.com/BM-ACADEMY/Anbunatureproducts-ecommerces/internal/domain"
)

var (
	ErrGroupNotFound   = errors.New("attribute group not found")
	ErrDuplicateGroup  = errors.New("attribute group already exists")
	ErrDuplicateOption = errors.New("attribute option already exists")
	ErrInvalidPrice    = errors.New("price must be a number greater than or equal to zero")
	ErrInvalidStock    = errors.New("stock must be null or a number greater than or equal to zero")
)

// FindGroup looks a group up by its exact, case-sensitive name. Runtime
// lookups (cart, resolve) are case-sensitive; only writes compare folded.
func FindGroup(p *domain.Product, name string) *domain.AttributeGroup {
	for i := range p.AttributeGroups {
		if p.AttributeGroups[i].Name == name {
			return &p.AttributeGroups[i]
		}
	}
	return nil
}

func FindOption(g *domain.AttributeGroup, name string) *domain.AttributeOption {
	for i := range g.Options {
		if g.Options[i].Name == name {
			return &g.Options[i]
		}
	}
	return nil
}

// AddGroup appends an empty group. The name must not collide with an
// existing group under case-insensitive comparison.
func AddGroup(p *domain.Product, name string) error {
	for i := range p.AttributeGroups {
		if strings.EqualFold(p.AttributeGroups[i].Name, name) {
			return ErrDuplicateGroup
		}
	}
	p.AttributeGroups = append(p.AttributeGroups, domain.AttributeGroup{Name: name})
	return nil
}

// RemoveGroup drops the named group. Removing an absent group is a no-op.
func RemoveGroup(p *domain.Product, name string) {
	for i := range p.AttributeGroups {
		if p.AttributeGroups[i].Name == name {
			p.AttributeGroups = append(p.AttributeGroups[:i], p.AttributeGroups[i+1:]...)
			return
		}
	}
}

// AddOption appends an option to the named group. Option names are unique
// within their group under case-insensitive comparison.
func AddOption(p *domain.Product, groupName string, opt domain.AttributeOption) error {
	group := FindGroup(p, groupName)
	if group == nil {
		return ErrGroupNotFound
	}
	for i := range group.Options {
		if strings.EqualFold(group.Options[i].Name, opt.Name) {
			return ErrDuplicateOption
		}
	}
	if !validPrice(opt.Price) {
		return ErrInvalidPrice
	}
	if opt.Stock != nil && *opt.Stock < 0 {
		return ErrInvalidStock
	}
	group.Options = append(group.Options, opt)
	return nil
}

// RemoveOption drops an option from the named group. Removing an absent
// option (or from an absent group) is a no-op.
func RemoveOption(p *domain.Product, groupName, optionName string) {
	group := FindGroup(p, groupName)
	if group == nil {
		return
	}
	for i := range group.Options {
		if group.Options[i].Name == optionName {
			group.Options = append(group.Options[:i], group.Options[i+1:]...)
			return
		}
	}
}
