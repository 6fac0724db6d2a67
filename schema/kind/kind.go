package kind

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrUnknown is returned for a kind value or name outside the closed set.
var ErrUnknown = errors.New("kind: unknown entity kind")

// A Kind is the base entity type of a generated entity.
type Kind uint8

// List of base entity kinds.
const (
	None Kind = iota
	Entity
	TreeEntity
	StateEntity
	endKinds
)

// Base is the registry payload of a kind.
type Base struct {
	// Superclass is the fully qualified superclass reference, empty for None.
	Superclass string
	// Columns lists every column declared by the superclass, in declaration order.
	Columns []string
	// Structural lists the kind-specific columns beyond the audit columns.
	Structural []string
}

// audit columns declared by the plain entity base class.
var auditColumns = []string{"id", "created_by", "create_time", "updated_by", "update_time"}

var (
	kindNames = [...]string{
		None:        "NONE",
		Entity:      "ENTITY",
		TreeEntity:  "TREE_ENTITY",
		StateEntity: "STATE_ENTITY",
	}
	registry = [...]struct {
		superclass string
		structural []string
		audited    bool
	}{
		None: {},
		Entity: {
			superclass: "org.zetaframework.base.entity.Entity",
			audited:    true,
		},
		TreeEntity: {
			superclass: "org.zetaframework.base.entity.TreeEntity",
			structural: []string{"parent_id", "label", "sort"},
			audited:    true,
		},
		StateEntity: {
			superclass: "org.zetaframework.base.entity.StateEntity",
			structural: []string{"state"},
			audited:    true,
		},
	}
)

// Kinds returns all kinds in declaration order.
func Kinds() []Kind {
	ks := make([]Kind, 0, endKinds)
	for k := None; k < endKinds; k++ {
		ks = append(ks, k)
	}
	return ks
}

// Valid reports if k is one of the declared kinds.
func (k Kind) Valid() bool { return k < endKinds }

// String returns the configuration name of the kind.
func (k Kind) String() string {
	if k.Valid() {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Parse returns the kind with the given configuration name (case-insensitive).
func Parse(s string) (Kind, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return None, fmt.Errorf("%w: %q", ErrUnknown, s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknown, uint8(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Lookup returns the superclass and column sets of k.
// The returned slices are fresh copies and may be modified by the caller.
func Lookup(k Kind) (Base, error) {
	if !k.Valid() {
		return Base{}, fmt.Errorf("%w: %d", ErrUnknown, uint8(k))
	}
	r := registry[k]
	b := Base{
		Superclass: r.superclass,
		Structural: slices.Clone(r.structural),
	}
	if r.audited {
		b.Columns = append(slices.Clone(auditColumns), r.structural...)
	}
	return b, nil
}

// MustLookup is like Lookup but panics on an unknown kind.
func MustLookup(k Kind) Base {
	b, err := Lookup(k)
	if err != nil {
		panic(err)
	}
	return b
}

// HasSuperclass reports if the generated entity extends a base class.
func (b Base) HasSuperclass() bool { return b.Superclass != "" }

// IsCommon reports if the column is declared by the superclass.
func (b Base) IsCommon(column string) bool { return slices.Contains(b.Columns, column) }

// IsStructural reports if the column is a kind-specific structural column.
func (b Base) IsStructural(column string) bool { return slices.Contains(b.Structural, column) }
