// SPDX-License-Identifier: Unlicense OR MIT

package fling

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Extrapolation computes a 1-dimensional velocity estimate for a set
// of timestamped points using polynomial regression.
type Extrapolation struct {
	// idx is the index into points of the next sample.
	idx int
	// filled is the number of valid samples in points.
	filled int
	// points is a circular buffer of samples.
	points    [historySize]sample
	lastValue float32
}

// Estimate is the result of projecting a gesture.
type Estimate struct {
	// Velocity is the estimated velocity at the last sample, in
	// pixels per second.
	Velocity float32
	// Distance is the projected total fling distance in pixels.
	Distance float32
}

type sample struct {
	t time.Duration
	v float32
}

type matrix struct {
	rows, cols int
	data       []float32
}

type coefficients [degree + 1]float32

const (
	degree      = 2
	historySize = 20
	// maxAge discards samples older than this relative to the
	// newest sample.
	maxAge = 100 * time.Millisecond
	// maxSampleGap ends the regression window at the first pause
	// in the gesture.
	maxSampleGap = 40 * time.Millisecond
)

// SampleDelta adds a relative sample to the estimation.
func (e *Extrapolation) SampleDelta(t time.Duration, delta float32) {
	val := delta + e.lastValue
	e.Sample(t, val)
}

// Sample adds an absolute sample to the estimation.
func (e *Extrapolation) Sample(t time.Duration, v float32) {
	e.lastValue = v
	e.points[e.idx] = sample{t: t, v: v}
	e.idx = (e.idx + 1) % historySize
	if e.filled < historySize {
		e.filled++
	}
}

// Estimate the velocity and fling distance of the gesture from the
// recorded samples.
func (e *Extrapolation) Estimate() Estimate {
	if e.filled < degree+1 {
		return Estimate{}
	}
	var X, Y []float32
	newest := e.at(0)
	prev := newest.t
	for i := 0; i < e.filled; i++ {
		p := e.at(i)
		age := newest.t - p.t
		if age > maxAge || prev-p.t > maxSampleGap {
			break
		}
		prev = p.t
		X = append(X, float32(-age.Seconds()))
		Y = append(Y, p.v)
	}
	if len(X) < degree+1 {
		return Estimate{}
	}
	coef, ok := polyFit(X, Y)
	if !ok {
		return Estimate{}
	}
	// The velocity is the first derivative at the newest sample.
	v := coef[1]
	if v > maxVelocity {
		v = maxVelocity
	} else if v < -maxVelocity {
		v = -maxVelocity
	}
	return Estimate{
		Velocity: v,
		Distance: v * decayTime,
	}
}

// at returns the i'th newest sample.
func (e *Extrapolation) at(i int) sample {
	return e.points[(e.idx-1-i+historySize)%historySize]
}

// polyFit computes the least squares polynomial fit of degree
// `degree` for the points (X[i], Y[i]). It reports failure when the
// design matrix is rank deficient.
func polyFit(X, Y []float32) (coefficients, bool) {
	if len(X) != len(Y) {
		panic("X and Y lengths differ")
	}
	if len(X) <= degree {
		return coefficients{}, false
	}
	// Vandermonde design matrix.
	m := newMatrix(len(X), degree+1)
	for i, x := range X {
		pow := float32(1)
		for j := 0; j < degree+1; j++ {
			m.set(i, j, pow)
			pow *= x
		}
	}
	q, rt, ok := decomposeQR(m)
	if !ok {
		return coefficients{}, false
	}
	// Solve R*c = transpose(Q)*Y for c by back substitution.
	qty := q.transpose().mulVec(Y)
	var c coefficients
	for i := degree; i >= 0; i-- {
		c[i] = qty[i]
		for j := i + 1; j < degree+1; j++ {
			// rt is the transpose of R.
			c[i] -= rt.get(j, i) * c[j]
		}
		c[i] /= rt.get(i, i)
	}
	return c, true
}

// decomposeQR computes the QR decomposition of m with modified
// Gram-Schmidt. It returns Q and the transpose of R.
func decomposeQR(m *matrix) (q, rt *matrix, ok bool) {
	q = newMatrix(m.rows, m.cols)
	rt = newMatrix(m.cols, m.cols)
	for j := 0; j < m.cols; j++ {
		v := make([]float32, m.rows)
		for i := range v {
			v[i] = m.get(i, j)
		}
		for k := 0; k < j; k++ {
			var dot float32
			for i := 0; i < m.rows; i++ {
				dot += q.get(i, k) * v[i]
			}
			// R[k][j] stored transposed.
			rt.set(j, k, dot)
			for i := 0; i < m.rows; i++ {
				v[i] -= dot * q.get(i, k)
			}
		}
		var norm float32
		for _, x := range v {
			norm += x * x
		}
		norm = float32(math.Sqrt(float64(norm)))
		if norm == 0 || math.IsNaN(float64(norm)) || math.IsInf(float64(norm), 0) {
			return nil, nil, false
		}
		rt.set(j, j, norm)
		for i := 0; i < m.rows; i++ {
			q.set(i, j, v[i]/norm)
		}
	}
	return q, rt, true
}

func newMatrix(rows, cols int) *matrix {
	return &matrix{
		rows: rows,
		cols: cols,
		data: make([]float32, rows*cols),
	}
}

// Matrix data is stored column major.
func (m *matrix) get(row, col int) float32 {
	return m.data[col*m.rows+row]
}

func (m *matrix) set(row, col int, v float32) {
	m.data[col*m.rows+row] = v
}

func (m *matrix) transpose() *matrix {
	t := newMatrix(m.cols, m.rows)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			t.set(j, i, m.get(i, j))
		}
	}
	return t
}

func (m *matrix) mul(m2 *matrix) *matrix {
	if m.cols != m2.rows {
		panic("mul: incompatible dimensions")
	}
	r := newMatrix(m.rows, m2.cols)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m2.cols; j++ {
			var sum float32
			for k := 0; k < m.cols; k++ {
				sum += m.get(i, k) * m2.get(k, j)
			}
			r.set(i, j, sum)
		}
	}
	return r
}

func (m *matrix) mulVec(v []float32) []float32 {
	if m.cols != len(v) {
		panic("mulVec: incompatible dimensions")
	}
	r := make([]float32, m.rows)
	for i := 0; i < m.rows; i++ {
		var sum float32
		for k := 0; k < m.cols; k++ {
			sum += m.get(i, k) * v[k]
		}
		r[i] = sum
	}
	return r
}

func (m *matrix) approxEqual(m2 *matrix) bool {
	if m.rows != m2.rows || m.cols != m2.cols {
		return false
	}
	const epsilon = 1e-3
	for i := range m.data {
		if d := m.data[i] - m2.data[i]; d < -epsilon || d > epsilon {
			return false
		}
	}
	return true
}

func (c coefficients) approxEqual(c2 coefficients) bool {
	const epsilon = 1e-3
	for i := range c {
		if d := c[i] - c2[i]; d < -epsilon || d > epsilon {
			return false
		}
	}
	return true
}

func (m *matrix) String() string {
	var b strings.Builder
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			fmt.Fprintf(&b, "%8.2f ", m.get(i, j))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
