package state

import "math"

// Matrix is a 2D affine transform stored as [A B C D E F]:
//
//	x' = A*x + C*y + E
//	y' = B*x + D*y + F
//
// Positive rotation angles turn clockwise on screen, where y grows downward.
type Matrix [6]float64

// Identity returns the identity matrix.
func Identity() Matrix {
	return Matrix{1, 0, 0, 1, 0, 0}
}

// Translate returns a translation matrix.
func Translate(tx, ty float64) Matrix {
	return Matrix{1, 0, 0, 1, tx, ty}
}

// Rotate returns a rotation matrix (angle in radians).
func Rotate(angle float64) Matrix {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Matrix{cos, sin, -sin, cos, 0, 0}
}

// RotateDeg returns a rotation matrix (angle in degrees).
func RotateDeg(angle float64) Matrix {
	return Rotate(angle * math.Pi / 180)
}

// RotateAbout rotates by angle degrees around c.
func RotateAbout(angle float64, c Point) Matrix {
	return Translate(-c.X, -c.Y).Multiply(RotateDeg(angle)).Multiply(Translate(c.X, c.Y))
}

// Multiply returns the transform that applies m first and then other.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		m[0]*other[0] + m[1]*other[2],
		m[0]*other[1] + m[1]*other[3],
		m[2]*other[0] + m[3]*other[2],
		m[2]*other[1] + m[3]*other[3],
		m[4]*other[0] + m[5]*other[2] + other[4],
		m[4]*other[1] + m[5]*other[3] + other[5],
	}
}

// Transform applies the matrix to x, y.
func (m Matrix) Transform(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// Apply applies the matrix to a Point.
func (m Matrix) Apply(p Point) Point {
	x, y := m.Transform(p.X, p.Y)
	return Point{x, y}
}

func (m Matrix) determinant() float64 {
	return m[0]*m[3] - m[1]*m[2]
}

// Invert returns the inverse matrix. A singular matrix inverts to the identity.
func (m Matrix) Invert() Matrix {
	det := m.determinant()
	if det == 0 {
		return Identity()
	}
	inv := 1 / det
	return Matrix{
		m[3] * inv,
		-m[1] * inv,
		-m[2] * inv,
		m[0] * inv,
		(m[2]*m[5] - m[3]*m[4]) * inv,
		(m[1]*m[4] - m[0]*m[5]) * inv,
	}
}

// IsIdentity reports whether m leaves every point in place.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// Translation returns the E, F offsets.
func (m Matrix) Translation() (float64, float64) {
	return m[4], m[5]
}

// Angle returns the rotation of a rigid transform in degrees.
func (m Matrix) Angle() float64 {
	return math.Atan2(m[1], m[0]) * 180 / math.Pi
}

const rigidTolerance = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) <= rigidTolerance }

// IsRigid reports whether m only rotates and translates.
func (m Matrix) IsRigid() bool {
	a, b, c, d := m[0], m[1], m[2], m[3]
	return near(a*a+b*b, 1) && near(c*c+d*d, 1) && near(a*c+b*d, 0) && m.determinant() > 0
}

// Split factors m so that m == residual.Multiply(rigid). The residual holds
// any scale, shear or reflection and keeps the origin fixed.
func (m Matrix) Split() (residual, rigid Matrix) {
	if m.IsRigid() {
		return Identity(), m
	}
	rigid = Rotate(math.Atan2(m[1], m[0])).Multiply(Translate(m[4], m[5]))
	return m.Multiply(rigid.Invert()), rigid
}
