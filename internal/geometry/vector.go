// Package geometry provides the 2D integer vector used for every position on
// the canvas, plus the SVG transform helpers built on it.
package geometry

import (
	"fmt"
	"math"
)

// Vector is an immutable 2D point in whole units (pixels on screen, units in
// the world). Every operation returns a new value.
type Vector struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Zero is the origin
var Zero = Vector{}

// New creates a vector
func New(x, y int) Vector {
	return Vector{X: x, Y: y}
}

// Add returns v + o
func (v Vector) Add(o Vector) Vector {
	return Vector{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o
func (v Vector) Sub(o Vector) Vector {
	return Vector{X: v.X - o.X, Y: v.Y - o.Y}
}

// Map applies f to both components
func (v Vector) Map(f func(int) int) Vector {
	return Vector{X: f(v.X), Y: f(v.Y)}
}

// Scale multiplies both components by factor, rounding to whole units.
func (v Vector) Scale(factor float64) Vector {
	return v.Map(func(c int) int {
		return int(math.Round(float64(c) * factor))
	})
}

// Inverse negates both components
func (v Vector) Inverse() Vector {
	return Vector{X: -v.X, Y: -v.Y}
}

// Bounded clamps both components to [-bound, bound].
func (v Vector) Bounded(bound int) Vector {
	return v.Map(func(c int) int {
		return max(min(c, bound), -bound)
	})
}

// Equals reports whether both components match
func (v Vector) Equals(o Vector) bool {
	return v.X == o.X && v.Y == o.Y
}

// String formats the vector as "x,y"
func (v Vector) String() string {
	return fmt.Sprintf("%d,%d", v.X, v.Y)
}

// Transform is an SVG transform kind
type Transform int

const (
	Translate Transform = iota
	ScaleTransform
)

// SVG renders v as an SVG transform attribute value, e.g. "translate(10,20)".
func (v Vector) SVG(t Transform) string {
	name := "translate"
	if t == ScaleTransform {
		name = "scale"
	}
	return fmt.Sprintf("%s(%d,%d)", name, v.X, v.Y)
}
