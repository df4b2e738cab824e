package FEM2D

import (
	"fmt"
	"strings"

	"github.com/notargets/gofem2d/types"
)

type Shape uint8

const (
	Triangle Shape = iota
	Quadrilateral
)

// ShapeNameMap accepts the problem file spellings, including the numeric
// codes of the legacy format where 1 is a quad and 2 a triangle
var ShapeNameMap = map[string]Shape{
	"tri":           Triangle,
	"triangle":      Triangle,
	"2":             Triangle,
	"quad":          Quadrilateral,
	"quadrilateral": Quadrilateral,
	"1":             Quadrilateral,
}

func NewShape(label string) (s Shape, err error) {
	var ok bool
	if s, ok = ShapeNameMap[strings.ToLower(strings.TrimSpace(label))]; !ok {
		err = types.NewConfigurationError("unknown element shape %q, have tri, quad", label)
	}
	return
}

func (s Shape) String() string {
	switch s {
	case Triangle:
		return "tri"
	case Quadrilateral:
		return "quad"
	}
	return fmt.Sprintf("Shape(%d)", s)
}

// Code is the legacy numeric shape code
func (s Shape) Code() int {
	if s == Quadrilateral {
		return 1
	}
	return 2
}

// NumCorners is the number of vertex nodes, which come first in the local
// node order of every element family
func (s Shape) NumCorners() int {
	if s == Quadrilateral {
		return 4
	}
	return 3
}

type Order uint8

const (
	Linear Order = iota + 1
	Quadratic
)

func (o Order) String() string {
	switch o {
	case Linear:
		return "linear"
	case Quadratic:
		return "quadratic"
	}
	return fmt.Sprintf("Order(%d)", o)
}

// ElementType is the (shape, order) pair, identified on input by the shape and
// the number of element nodes
type ElementType struct {
	Shape Shape
	Order Order
}

var (
	Tri3  = ElementType{Triangle, Linear}
	Tri6  = ElementType{Triangle, Quadratic}
	Quad4 = ElementType{Quadrilateral, Linear}
	Quad9 = ElementType{Quadrilateral, Quadratic}
)

var elementNodeCounts = map[ElementType]int{
	Tri3:  3,
	Tri6:  6,
	Quad4: 4,
	Quad9: 9,
}

func NewElementType(shape Shape, nen int) (et ElementType, err error) {
	for et, n := range elementNodeCounts {
		if et.Shape == shape && n == nen {
			return et, nil
		}
	}
	err = types.NewConfigurationError("no %s element with %d nodes, have tri 3/6 and quad 4/9", shape, nen)
	return
}

func (et ElementType) NEN() int { return elementNodeCounts[et] }

func (et ElementType) String() string {
	return fmt.Sprintf("%s%d (%s)", et.Shape, et.NEN(), et.Order)
}
