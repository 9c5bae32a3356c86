package hardware

import "math"

// Quat is a rotation quaternion stored as (x, y, z, w).
type Quat [4]float64

func qRotY(angle float64) Quat {
	half := angle / 2
	return Quat{0, math.Sin(half), 0, math.Cos(half)}
}

func qRotZ(angle float64) Quat {
	half := angle / 2
	return Quat{0, 0, math.Sin(half), math.Cos(half)}
}

// Mul returns the composition q * r (apply r first, then q).
func (q Quat) Mul(r Quat) Quat {
	qx, qy, qz, qw := q[0], q[1], q[2], q[3]
	rx, ry, rz, rw := r[0], r[1], r[2], r[3]
	return Quat{
		qw*rx + qx*rw + qy*rz - qz*ry,
		qw*ry - qx*rz + qy*rw + qz*rx,
		qw*rz + qx*ry - qy*rx + qz*rw,
		qw*rw - qx*rx - qy*ry - qz*rz,
	}
}

// Conj returns the conjugate (inverse for unit quaternions).
func (q Quat) Conj() Quat {
	return Quat{-q[0], -q[1], -q[2], q[3]}
}

// Rotate applies the rotation to a 3-vector.
func (q Quat) Rotate(v [3]float64) [3]float64 {
	p := Quat{v[0], v[1], v[2], 0}
	r := q.Mul(p).Mul(q.Conj())
	return [3]float64{r[0], r[1], r[2]}
}

// XiEtaToQuat builds the pointing quaternion for a detector offset
// (xi, eta) from the boresight with polarization angle gamma, all in
// radians. The rotation takes the boresight z axis to the detector
// line of sight and orients the polarization sensitive direction.
func XiEtaToQuat(xi, eta, gamma float64) Quat {
	theta := math.Sqrt(xi*xi + eta*eta)
	phi := math.Atan2(eta, xi)
	return qRotZ(phi).Mul(qRotY(theta)).Mul(qRotZ(gamma - phi))
}

// QuatToXiEta recovers the flat-projected offset and polarization angle
// from a pointing quaternion. Inverse of XiEtaToQuat.
func QuatToXiEta(q Quat) (xi, eta, gamma float64) {
	los := q.Rotate([3]float64{0, 0, 1})
	theta := math.Acos(clamp(los[2], -1, 1))
	phi := math.Atan2(los[1], los[0])
	xi = theta * math.Cos(phi)
	eta = theta * math.Sin(phi)

	// Polarization direction: image of the x axis, projected on the
	// plane tangent to the line of sight.
	pol := q.Rotate([3]float64{1, 0, 0})
	cp, sp := math.Cos(phi), math.Sin(phi)
	// Tangent basis at (theta, phi): e1 along increasing theta folded
	// back to the boresight frame, e2 along increasing phi.
	e1 := [3]float64{math.Cos(theta) * cp, math.Cos(theta) * sp, -math.Sin(theta)}
	e2 := [3]float64{-sp, cp, 0}
	gamma = math.Atan2(dot(pol, e2), dot(pol, e1)) + phi
	gamma = math.Mod(gamma+2*math.Pi, 2*math.Pi)
	return xi, eta, gamma
}

func dot(a, b [3]float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
