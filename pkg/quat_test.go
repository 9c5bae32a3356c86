package hardware

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXiEtaToQuatRoundTrip(t *testing.T) {
	cases := []struct {
		name           string
		xi, eta, gamma float64
	}{
		{"boresight", 0.001, 0, 0},
		{"offset", 0.02, -0.015, 0.5},
		{"far", -0.3, 0.25, 2.0},
		{"polB", 0.1, 0.1, math.Pi / 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := XiEtaToQuat(tc.xi, tc.eta, tc.gamma)
			xi, eta, gamma := QuatToXiEta(q)
			assert.InDelta(t, tc.xi, xi, 1e-9)
			assert.InDelta(t, tc.eta, eta, 1e-9)
			want := math.Mod(tc.gamma+2*math.Pi, 2*math.Pi)
			assert.InDelta(t, want, gamma, 1e-9)
		})
	}
}

func TestQuatIsUnit(t *testing.T) {
	q := XiEtaToQuat(0.1, -0.2, 1.3)
	norm := q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3]
	require.InDelta(t, 1.0, norm, 1e-12)
}

func TestQuatRotatePreservesLength(t *testing.T) {
	q := XiEtaToQuat(0.05, 0.07, 0.3)
	v := q.Rotate([3]float64{0, 0, 1})
	norm := v[0]*v[0] + v[1]*v[1] + v[2]*v[2]
	require.InDelta(t, 1.0, norm, 1e-12)
}

func TestMulConjIsIdentity(t *testing.T) {
	q := XiEtaToQuat(0.02, -0.01, 0.7)
	id := q.Mul(q.Conj())
	assert.InDelta(t, 0, id[0], 1e-12)
	assert.InDelta(t, 0, id[1], 1e-12)
	assert.InDelta(t, 0, id[2], 1e-12)
	assert.InDelta(t, 1, id[3], 1e-12)
}
