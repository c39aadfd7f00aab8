// Package geometry provides the integer axis-aligned box algebra used by the
// packing engine: points, cuboids, orientation enumeration, and the
// intersection/difference operations that maintain empty maximal subspaces.
//
// Axis convention: x is width, y is height, z is depth. All coordinates are
// carton-local with the origin at the bottom-left-near corner.
package geometry

// Point is an integer coordinate in carton-local space.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// Distance2From returns the squared Euclidean distance to another point.
func (p Point) Distance2From(other Point) int {
	dx := p.X - other.X
	dy := p.Y - other.Y
	dz := p.Z - other.Z
	return dx*dx + dy*dy + dz*dz
}

// scalarLessEq reports whether every component of p is <= the corresponding
// component of other.
func (p Point) scalarLessEq(other Point) bool {
	return p.X <= other.X && p.Y <= other.Y && p.Z <= other.Z
}

// scalarLess reports whether every component of p is strictly below the
// corresponding component of other.
func (p Point) scalarLess(other Point) bool {
	return p.X < other.X && p.Y < other.Y && p.Z < other.Z
}

// Cuboid is the physical size of an item or carton: width along x, depth
// along z, height along y.
type Cuboid struct {
	Width  int `json:"width"`
	Depth  int `json:"depth"`
	Height int `json:"height"`
}

// NewCuboid creates a cuboid from width, depth, and height.
func NewCuboid(width, depth, height int) Cuboid {
	return Cuboid{Width: width, Depth: depth, Height: height}
}

// Volume returns width * depth * height.
func (c Cuboid) Volume() int {
	return c.Width * c.Depth * c.Height
}

// FitsIn reports whether the cuboid fits in the space without rotation.
func (c Cuboid) FitsIn(s Space) bool {
	return s.Width() >= c.Width && s.Height() >= c.Height && s.Depth() >= c.Depth
}

// RotationMode controls which axis-aligned orientations of an item are
// admissible during packing.
type RotationMode int

const (
	// ThreeDimension allows all distinct permutations of width/depth/height.
	ThreeDimension RotationMode = iota
	// TwoDimension keeps the height axis fixed and only swaps width and depth.
	TwoDimension
)

func (m RotationMode) String() string {
	if m == TwoDimension {
		return "2D"
	}
	return "3D"
}

// Orientations enumerates the distinct orientations of a cuboid under this
// rotation mode. The order is canonical and stable: orientation genes index
// into the returned slice, so it must never change between calls. Duplicate
// permutations caused by equal extents are suppressed, so a cube yields one
// entry, a square-section prism three, and an all-distinct cuboid six.
func (m RotationMode) Orientations(c Cuboid) []Cuboid {
	return m.AppendOrientations(nil, c)
}

// AppendOrientations is Orientations with a caller-supplied buffer, so hot
// paths can reuse a slice across calls.
func (m RotationMode) AppendOrientations(dst []Cuboid, c Cuboid) []Cuboid {
	dst = append(dst, NewCuboid(c.Width, c.Depth, c.Height))
	if c.Width != c.Depth {
		dst = append(dst, NewCuboid(c.Depth, c.Width, c.Height))
	}
	if m == TwoDimension {
		return dst
	}

	if c.Height != c.Depth {
		dst = append(dst, NewCuboid(c.Width, c.Height, c.Depth))
		if c.Height != c.Width {
			dst = append(dst, NewCuboid(c.Height, c.Width, c.Depth))
		}
	}
	if c.Width != c.Depth && c.Height != c.Width {
		dst = append(dst, NewCuboid(c.Height, c.Depth, c.Width))
		if c.Height != c.Depth {
			dst = append(dst, NewCuboid(c.Depth, c.Height, c.Width))
		}
	}
	return dst
}

// Space is an axis-aligned half-open box [BottomLeft, UpperRight). Degenerate
// spaces (any extent zero) are filtered out where spaces are produced, never
// stored.
type Space struct {
	BottomLeft Point `json:"bottom_left"`
	UpperRight Point `json:"upper_right"`
}

// NewSpace creates a space from its two corners.
func NewSpace(bottomLeft, upperRight Point) Space {
	return Space{BottomLeft: bottomLeft, UpperRight: upperRight}
}

// SpaceAt returns the space occupied by a cuboid anchored at origin:
// upper-right = origin + (width, height, depth).
func SpaceAt(origin Point, c Cuboid) Space {
	return Space{
		BottomLeft: origin,
		UpperRight: Point{
			X: origin.X + c.Width,
			Y: origin.Y + c.Height,
			Z: origin.Z + c.Depth,
		},
	}
}

// Origin returns the bottom-left corner.
func (s Space) Origin() Point {
	return s.BottomLeft
}

// Width is the extent along x.
func (s Space) Width() int {
	return s.UpperRight.X - s.BottomLeft.X
}

// Height is the extent along y.
func (s Space) Height() int {
	return s.UpperRight.Y - s.BottomLeft.Y
}

// Depth is the extent along z.
func (s Space) Depth() int {
	return s.UpperRight.Z - s.BottomLeft.Z
}

// Size returns the extents as a cuboid.
func (s Space) Size() Cuboid {
	return NewCuboid(s.Width(), s.Depth(), s.Height())
}

// Volume returns the enclosed volume.
func (s Space) Volume() int {
	return s.Width() * s.Height() * s.Depth()
}

// MinExtent returns the smallest of the three extents.
func (s Space) MinExtent() int {
	return min(s.Width(), s.Height(), s.Depth())
}

// Center returns the midpoint of the space.
func (s Space) Center() (x, y, z float64) {
	x = (float64(s.UpperRight.X) + float64(s.BottomLeft.X)) / 2
	y = (float64(s.UpperRight.Y) + float64(s.BottomLeft.Y)) / 2
	z = (float64(s.UpperRight.Z) + float64(s.BottomLeft.Z)) / 2
	return x, y, z
}

// Contains reports whether other lies entirely inside s. Touching faces
// count as contained.
func (s Space) Contains(other Space) bool {
	return s.BottomLeft.scalarLessEq(other.BottomLeft) &&
		other.UpperRight.scalarLessEq(s.UpperRight)
}

// Intersects reports whether the interiors of the two spaces overlap.
// Spaces that merely share a face do not intersect.
func (s Space) Intersects(other Space) bool {
	return s.BottomLeft.scalarLess(other.UpperRight) &&
		other.BottomLeft.scalarLess(s.UpperRight)
}

// Intersect returns the overlap of the two spaces: the componentwise max of
// the bottom-left corners and min of the upper-right corners. Callers must
// ensure the spaces intersect, otherwise the result is degenerate.
func (s Space) Intersect(other Space) Space {
	return Space{
		BottomLeft: Point{
			X: max(s.BottomLeft.X, other.BottomLeft.X),
			Y: max(s.BottomLeft.Y, other.BottomLeft.Y),
			Z: max(s.BottomLeft.Z, other.BottomLeft.Z),
		},
		UpperRight: Point{
			X: min(s.UpperRight.X, other.UpperRight.X),
			Y: min(s.UpperRight.Y, other.UpperRight.Y),
			Z: min(s.UpperRight.Z, other.UpperRight.Z),
		},
	}
}

// AppendDifference computes the set difference s \ occupied, where occupied
// must already be clipped to lie inside s (see Intersect). It produces up to
// six maximal one-sided slabs, one per face of the occupied region, appends
// those that pass the keep predicate to dst, and returns dst. Zero-extent
// slabs are always discarded; keep may be nil to accept everything else.
func (s Space) AppendDifference(dst []Space, occupied Space, keep func(Space) bool) []Space {
	sb, su := s.BottomLeft, s.UpperRight
	ob, ou := occupied.BottomLeft, occupied.UpperRight

	candidates := [6]Space{
		NewSpace(sb, Point{X: ob.X, Y: su.Y, Z: su.Z}), // left of occupied
		NewSpace(Point{X: ou.X, Y: sb.Y, Z: sb.Z}, su), // right
		NewSpace(sb, Point{X: su.X, Y: ob.Y, Z: su.Z}), // below
		NewSpace(Point{X: sb.X, Y: ou.Y, Z: sb.Z}, su), // above
		NewSpace(sb, Point{X: su.X, Y: su.Y, Z: ob.Z}), // near
		NewSpace(Point{X: sb.X, Y: sb.Y, Z: ou.Z}, su), // far
	}

	for _, c := range candidates {
		if c.MinExtent() <= 0 {
			continue
		}
		if keep != nil && !keep(c) {
			continue
		}
		dst = append(dst, c)
	}
	return dst
}
