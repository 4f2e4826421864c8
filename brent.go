package thet

import "math"

// BrentStatus reports how a scalar root search terminated.
type BrentStatus int

const (
	// BrentSuccess means the search converged within tolerance.
	BrentSuccess BrentStatus = iota
	// BrentNoBracketing means the objective had the same sign at both
	// bracket endpoints, so no root is guaranteed inside the interval.
	BrentNoBracketing
	// BrentMaxIterations means the iteration cap was reached before the
	// bracket shrank within tolerance.
	BrentMaxIterations
)

func (s BrentStatus) String() string {
	switch s {
	case BrentSuccess:
		return "success"
	case BrentNoBracketing:
		return "no bracketing"
	case BrentMaxIterations:
		return "max iterations exceeded"

	default:
		return "illegal status"
	}
}

// brentRoot finds a root of f in [min, max] with Brent's method, combining
// bisection, the secant rule, and inverse quadratic interpolation. The
// initial guess x0 is used to split the bracket when the sign change falls on
// one side of it; otherwise the full interval is used. Convergence is judged
// against relTol*|x| + absTol.
func brentRoot(f func(float64) float64, min, max, x0, absTol, relTol float64, maxIterations int) (float64, float64, int, BrentStatus) {
	a, b := min, max
	fa, fb := f(a), f(b)
	iterations := 2

	if fa == 0 {
		return a, fa, iterations, BrentSuccess
	}
	if fb == 0 {
		return b, fb, iterations, BrentSuccess
	}

	// Try to shrink the bracket around the initial guess before giving up
	// on a full-interval sign change.
	if x0 > a && x0 < b {
		f0 := f(x0)
		iterations++
		if f0 == 0 {
			return x0, f0, iterations, BrentSuccess
		}
		if fa*f0 < 0 {
			b, fb = x0, f0
		} else if f0*fb < 0 {
			a, fa = x0, f0
		}
	}
	if fa*fb > 0 {
		return b, fb, iterations, BrentNoBracketing
	}

	c, fc := a, fa
	d := b - a
	e := d

	for ; iterations < maxIterations+2; iterations++ {
		if math.Abs(fc) < math.Abs(fb) {
			a, b, c = b, c, b
			fa, fb, fc = fb, fc, fb
		}

		tol := relTol*math.Abs(b) + absTol
		xm := 0.5 * (c - b)
		if math.Abs(xm) <= tol || fb == 0 {
			return b, fb, iterations, BrentSuccess
		}

		if math.Abs(e) >= tol && math.Abs(fa) > math.Abs(fb) {
			// Attempt inverse quadratic interpolation, falling back to
			// the secant rule when only two points are distinct.
			s := fb / fa
			var p, q float64
			if a == c {
				p = 2 * xm * s
				q = 1 - s
			} else {
				q = fa / fc
				r := fb / fc
				p = s * (2*xm*q*(q-r) - (b-a)*(r-1))
				q = (q - 1) * (r - 1) * (s - 1)
			}
			if p > 0 {
				q = -q
			}
			p = math.Abs(p)
			if 2*p < math.Min(3*xm*q-math.Abs(tol*q), math.Abs(e*q)) {
				e = d
				d = p / q
			} else {
				// Interpolation not trusted; bisect.
				d = xm
				e = d
			}
		} else {
			d = xm
			e = d
		}

		a, fa = b, fb
		if math.Abs(d) > tol {
			b += d
		} else if xm > 0 {
			b += tol
		} else {
			b -= tol
		}
		fb = f(b)

		if (fb > 0) == (fc > 0) {
			c, fc = a, fa
			d = b - a
			e = d
		}
	}

	return b, fb, iterations, BrentMaxIterations
}
