// Package core provides the deterministic building blocks shared by the engine:
// grid coordinates, a seedable random source and a logical-clock task scheduler.
// Env bundles them with the event bus and logger every engine component shares.
package core

// Coord is a grid coordinate. X grows to the right, Y grows downward.
type Coord struct {
	X, Y int
}

// C is shorthand for constructing a Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// Add returns the coordinate offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Manhattan returns the taxicab distance between two coordinates.
func Manhattan(a, b Coord) int {
	return Abs(a.X-b.X) + Abs(a.Y-b.Y)
}

// StepToward returns the next coordinate on an x-first Manhattan walk from
// `from` to `to`. The x axis is closed completely before y moves.
func StepToward(from, to Coord) Coord {
	switch {
	case from.X < to.X:
		return from.Add(1, 0)
	case from.X > to.X:
		return from.Add(-1, 0)
	case from.Y < to.Y:
		return from.Add(0, 1)
	case from.Y > to.Y:
		return from.Add(0, -1)
	}
	return from
}

// Path returns every coordinate visited walking from `from` to `to`,
// excluding the start and including the destination.
func Path(from, to Coord) []Coord {
	path := make([]Coord, 0, Manhattan(from, to))
	cur := from
	for cur != to {
		cur = StepToward(cur, to)
		path = append(path, cur)
	}
	return path
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
