// Package regression provides the curve-fitting models used by the forecast feature.
package regression

import (
	"errors"
	"fmt"
	"math"
)

const (
	// DefaultEpsilon は損失関数の ε-チューブ幅です（libsvm / scikit-learn のデフォルト値）。
	DefaultEpsilon = 0.1
	// DefaultTol は停止条件の許容誤差です。
	DefaultTol = 1e-3
	// DefaultMaxIter はSMOの最大反復回数です。
	DefaultMaxIter = 200000

	tau = 1e-12
)

var (
	// ErrEmptyTrainingSet is returned when Fit is called without samples.
	ErrEmptyTrainingSet = errors.New("regression: empty training set")
	// ErrDimensionMismatch is returned when samples and targets disagree in length or width.
	ErrDimensionMismatch = errors.New("regression: dimension mismatch")
	// ErrInvalidHyperparameter is returned for non-positive C or gamma.
	ErrInvalidHyperparameter = errors.New("regression: invalid hyperparameter")
)

// SVR は RBF カーネルを用いた ε-サポートベクター回帰です。
// 学習は libsvm と同じ二次情報による作業集合選択の SMO で行い、
// 同じ入力に対しては常に同じモデルを返します。
type SVR struct {
	C       float64 // 正則化定数
	Gamma   float64 // RBFカーネル係数
	Epsilon float64 // ε-不感帯の幅
	Tol     float64 // KKT条件違反の許容値
	MaxIter int     // 反復回数の上限
}

// NewSVR returns an SVR with the given C and gamma and default epsilon, tolerance and iteration cap.
func NewSVR(c, gamma float64) SVR {
	return SVR{C: c, Gamma: gamma, Epsilon: DefaultEpsilon, Tol: DefaultTol, MaxIter: DefaultMaxIter}
}

// SVRModel is a fitted regressor.
type SVRModel struct {
	support [][]float64
	coef    []float64
	rho     float64
	gamma   float64

	// Iterations is the number of SMO steps taken.
	Iterations int
	// Converged reports whether the KKT tolerance was reached before MaxIter.
	Converged bool
}

// Fit trains the regressor on samples x (one feature vector per row) and targets y.
func (s SVR) Fit(x [][]float64, y []float64) (*SVRModel, error) {
	if len(x) == 0 {
		return nil, ErrEmptyTrainingSet
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: %d samples, %d targets", ErrDimensionMismatch, len(x), len(y))
	}
	width := len(x[0])
	for i, row := range x {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d features, want %d", ErrDimensionMismatch, i, len(row), width)
		}
	}
	if s.C <= 0 || s.Gamma <= 0 {
		return nil, fmt.Errorf("%w: C=%g gamma=%g", ErrInvalidHyperparameter, s.C, s.Gamma)
	}
	if s.Epsilon < 0 {
		return nil, fmt.Errorf("%w: epsilon=%g", ErrInvalidHyperparameter, s.Epsilon)
	}
	tol := s.Tol
	if tol <= 0 {
		tol = DefaultTol
	}
	maxIter := s.MaxIter
	if maxIter <= 0 {
		maxIter = DefaultMaxIter
	}

	l := len(x)
	kernel := make([]float64, l*l)
	for i := 0; i < l; i++ {
		for j := i; j < l; j++ {
			v := rbf(x[i], x[j], s.Gamma)
			kernel[i*l+j] = v
			kernel[j*l+i] = v
		}
	}

	// 双対問題の変数は α+ (0..l-1) と α- (l..2l-1) の 2l 個
	n := 2 * l
	sol := &smo{
		l:      l,
		c:      s.C,
		kernel: kernel,
		alpha:  make([]float64, n),
		sign:   make([]float64, n),
		grad:   make([]float64, n),
		qd:     make([]float64, n),
	}
	for i := 0; i < l; i++ {
		sol.sign[i] = 1
		sol.sign[i+l] = -1
		sol.grad[i] = s.Epsilon - y[i]
		sol.grad[i+l] = s.Epsilon + y[i]
		sol.qd[i] = kernel[i*l+i]
		sol.qd[i+l] = kernel[i*l+i]
	}

	m := &SVRModel{gamma: s.Gamma}
	for m.Iterations < maxIter {
		i, j, ok := sol.selectWorkingSet(tol)
		if !ok {
			m.Converged = true
			break
		}
		sol.update(i, j)
		m.Iterations++
	}
	m.rho = sol.rho()

	for i := 0; i < l; i++ {
		beta := sol.alpha[i] - sol.alpha[i+l]
		if beta == 0 {
			continue
		}
		sv := make([]float64, width)
		copy(sv, x[i])
		m.support = append(m.support, sv)
		m.coef = append(m.coef, beta)
	}
	return m, nil
}

// Predict evaluates the fitted function at x.
func (m *SVRModel) Predict(x []float64) float64 {
	sum := 0.0
	for i, sv := range m.support {
		sum += m.coef[i] * rbf(sv, x, m.gamma)
	}
	return sum - m.rho
}

// PredictBatch evaluates the fitted function at every row of x.
func (m *SVRModel) PredictBatch(x [][]float64) []float64 {
	out := make([]float64, len(x))
	for i, row := range x {
		out[i] = m.Predict(row)
	}
	return out
}

// SupportVectors returns the number of samples with a non-zero dual coefficient.
func (m *SVRModel) SupportVectors() int {
	return len(m.support)
}

// Intercept returns the constant term the prediction converges to far from the data.
func (m *SVRModel) Intercept() float64 {
	return -m.rho
}

func rbf(a, b []float64, gamma float64) float64 {
	d := 0.0
	for k := range a {
		diff := a[k] - b[k]
		d += diff * diff
	}
	return math.Exp(-gamma * d)
}

// smo holds the solver state for the ε-SVR dual problem.
type smo struct {
	l      int
	c      float64
	kernel []float64
	alpha  []float64
	sign   []float64
	grad   []float64
	qd     []float64
}

// q returns the signed kernel entry Q_ij = s_i s_j K(i mod l, j mod l).
func (s *smo) q(i, j int) float64 {
	return s.sign[i] * s.sign[j] * s.kernel[(i%s.l)*s.l+j%s.l]
}

func (s *smo) upperBound(i int) bool { return s.alpha[i] >= s.c }
func (s *smo) lowerBound(i int) bool { return s.alpha[i] <= 0 }

// selectWorkingSet picks the maximal violating pair using second-order information.
func (s *smo) selectWorkingSet(tol float64) (int, int, bool) {
	gmax := math.Inf(-1)
	gmaxIdx := -1
	for t := range s.alpha {
		if s.sign[t] > 0 {
			if !s.upperBound(t) && -s.grad[t] >= gmax {
				gmax = -s.grad[t]
				gmaxIdx = t
			}
		} else {
			if !s.lowerBound(t) && s.grad[t] >= gmax {
				gmax = s.grad[t]
				gmaxIdx = t
			}
		}
	}
	if gmaxIdx < 0 {
		return 0, 0, false
	}

	i := gmaxIdx
	gmax2 := math.Inf(-1)
	gminIdx := -1
	objDiffMin := math.Inf(1)
	for j := range s.alpha {
		var gradDiff, quad float64
		if s.sign[j] > 0 {
			if s.lowerBound(j) {
				continue
			}
			if s.grad[j] >= gmax2 {
				gmax2 = s.grad[j]
			}
			gradDiff = gmax + s.grad[j]
			quad = s.qd[i] + s.qd[j] - 2*s.sign[i]*s.q(i, j)
		} else {
			if s.upperBound(j) {
				continue
			}
			if -s.grad[j] >= gmax2 {
				gmax2 = -s.grad[j]
			}
			gradDiff = gmax - s.grad[j]
			quad = s.qd[i] + s.qd[j] + 2*s.sign[i]*s.q(i, j)
		}
		if gradDiff <= 0 {
			continue
		}
		if quad <= 0 {
			quad = tau
		}
		if objDiff := -(gradDiff * gradDiff) / quad; objDiff <= objDiffMin {
			gminIdx = j
			objDiffMin = objDiff
		}
	}

	if gmax+gmax2 < tol || gminIdx < 0 {
		return 0, 0, false
	}
	return i, gminIdx, true
}

// update solves the two-variable sub-problem for (i, j) and refreshes the gradient.
func (s *smo) update(i, j int) {
	c := s.c
	qij := s.q(i, j)
	oldI, oldJ := s.alpha[i], s.alpha[j]
	ai, aj := oldI, oldJ

	if s.sign[i] != s.sign[j] {
		quad := s.qd[i] + s.qd[j] + 2*qij
		if quad <= 0 {
			quad = tau
		}
		delta := (-s.grad[i] - s.grad[j]) / quad
		diff := ai - aj
		ai += delta
		aj += delta
		if diff > 0 {
			if aj < 0 {
				aj = 0
				ai = diff
			}
		} else if ai < 0 {
			ai = 0
			aj = -diff
		}
		if diff > 0 {
			if ai > c {
				ai = c
				aj = c - diff
			}
		} else if aj > c {
			aj = c
			ai = c + diff
		}
	} else {
		quad := s.qd[i] + s.qd[j] - 2*qij
		if quad <= 0 {
			quad = tau
		}
		delta := (s.grad[i] - s.grad[j]) / quad
		sum := ai + aj
		ai -= delta
		aj += delta
		if sum > c {
			if ai > c {
				ai = c
				aj = sum - c
			}
		} else if aj < 0 {
			aj = 0
			ai = sum
		}
		if sum > c {
			if aj > c {
				aj = c
				ai = sum - c
			}
		} else if ai < 0 {
			ai = 0
			aj = sum
		}
	}

	s.alpha[i], s.alpha[j] = ai, aj
	di, dj := ai-oldI, aj-oldJ
	for k := range s.grad {
		s.grad[k] += s.q(i, k)*di + s.q(j, k)*dj
	}
}

// rho computes the bias from free variables, or the midpoint of the feasible interval.
func (s *smo) rho() float64 {
	ub := math.Inf(1)
	lb := math.Inf(-1)
	nFree := 0
	sumFree := 0.0
	for i := range s.alpha {
		yg := s.sign[i] * s.grad[i]
		switch {
		case s.upperBound(i):
			if s.sign[i] < 0 {
				ub = math.Min(ub, yg)
			} else {
				lb = math.Max(lb, yg)
			}
		case s.lowerBound(i):
			if s.sign[i] > 0 {
				ub = math.Min(ub, yg)
			} else {
				lb = math.Max(lb, yg)
			}
		default:
			nFree++
			sumFree += yg
		}
	}
	if nFree > 0 {
		return sumFree / float64(nFree)
	}
	return (ub + lb) / 2
}
