package world

// Box is an axis-aligned bounding box centered on (X, Y).
type Box struct {
	X, Y          float64 // Center
	Width, Height float64
}

// SquareBox returns a box of the given side length centered on (x, y).
func SquareBox(x, y, side float64) Box {
	return Box{X: x, Y: y, Width: side, Height: side}
}

// Min returns the lower-left corner.
func (b Box) Min() (float64, float64) {
	return b.X - b.Width/2, b.Y - b.Height/2
}

// Max returns the upper-right corner.
func (b Box) Max() (float64, float64) {
	return b.X + b.Width/2, b.Y + b.Height/2
}

// Overlaps returns true if the two boxes overlap. Boxes that only share an
// edge do not overlap, so a player can stand flush against a wall.
func Overlaps(a, b Box) bool {
	aMinX, aMinY := a.Min()
	aMaxX, aMaxY := a.Max()
	bMinX, bMinY := b.Min()
	bMaxX, bMaxY := b.Max()
	return aMinX < bMaxX &&
		aMaxX > bMinX &&
		aMinY < bMaxY &&
		aMaxY > bMinY
}
