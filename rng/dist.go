package rng

import "math"

// machineEpsilon is 2^-52, the gap between 1.0 and the next float64.
// Every port substitutes the same literal when a uniform draw of exactly 1.0
// would reach log(0) or a zero divisor, keeping sampled streams identical.
const machineEpsilon = 2.220446049250313e-16

// smallestPositiveSubnormal is 2^-1074, the smallest positive float64.
// Used in place of a uniform draw of exactly 0.0 inside Box-Muller.
const smallestPositiveSubnormal = 5e-324

// Distribution generates samples from a fixed parametric family.
type Distribution interface {
	// Sample draws a single value using the caller's generator.
	Sample(r *Rng) float64

	// Samples draws count values using the caller's generator.
	Samples(r *Rng, count int) []float64
}

// Additive is a normal (Gaussian) distribution sampled via Box-Muller.
type Additive struct {
	Mean   float64
	StdDev float64
}

// NewAdditive creates an additive (normal) distribution.
// Panics when stdDev <= 0.
func NewAdditive(mean, stdDev float64) *Additive {
	if stdDev <= 0 {
		panic("rng: stdDev must be positive")
	}
	return &Additive{Mean: mean, StdDev: stdDev}
}

func (a *Additive) Sample(r *Rng) float64 {
	u1 := r.UniformFloat()
	u2 := r.UniformFloat()

	if u1 == 0 {
		u1 = smallestPositiveSubnormal
	}

	radius := math.Sqrt(-2.0 * math.Log(u1))
	theta := 2.0 * math.Pi * u2

	// first of the two Box-Muller outputs
	z := radius * math.Cos(theta)

	return a.Mean + z*a.StdDev
}

func (a *Additive) Samples(r *Rng, count int) []float64 {
	return fill(a, r, count)
}

// Multiplic is a multiplicative (log-normal) distribution: the logarithm of
// its samples follows an Additive distribution.
type Multiplic struct {
	LogMean   float64
	LogStdDev float64

	additive *Additive
}

// NewMultiplic creates a multiplicative (log-normal) distribution.
// Panics when logStdDev <= 0.
func NewMultiplic(logMean, logStdDev float64) *Multiplic {
	return &Multiplic{
		LogMean:   logMean,
		LogStdDev: logStdDev,
		additive:  NewAdditive(logMean, logStdDev),
	}
}

func (m *Multiplic) Sample(r *Rng) float64 {
	return math.Exp(m.additive.Sample(r))
}

func (m *Multiplic) Samples(r *Rng, count int) []float64 {
	return fill(m, r, count)
}

// Exp is an exponential distribution with the given rate; its mean is 1/rate.
type Exp struct {
	Rate float64
}

// NewExp creates an exponential distribution. Panics when rate <= 0.
func NewExp(rate float64) *Exp {
	if rate <= 0 {
		panic("rng: rate must be positive")
	}
	return &Exp{Rate: rate}
}

func (e *Exp) Sample(r *Rng) float64 {
	// inverse CDF: -ln(1-U)/rate
	u := r.UniformFloat()
	if u == 1.0 {
		u = 1.0 - machineEpsilon
	}
	return -math.Log(1.0-u) / e.Rate
}

func (e *Exp) Samples(r *Rng, count int) []float64 {
	return fill(e, r, count)
}

// Power is a power-law (Pareto) distribution with minimum value and shape.
type Power struct {
	Min   float64
	Shape float64
}

// NewPower creates a power (Pareto) distribution.
// Panics when min <= 0 or shape <= 0.
func NewPower(min, shape float64) *Power {
	if min <= 0 {
		panic("rng: min must be positive")
	}
	if shape <= 0 {
		panic("rng: shape must be positive")
	}
	return &Power{Min: min, Shape: shape}
}

func (p *Power) Sample(r *Rng) float64 {
	// inverse CDF: min / (1-U)^(1/shape)
	u := r.UniformFloat()
	if u == 1.0 {
		u = 1.0 - machineEpsilon
	}
	return p.Min / math.Pow(1.0-u, 1.0/p.Shape)
}

func (p *Power) Samples(r *Rng, count int) []float64 {
	return fill(p, r, count)
}

// Uniform is a uniform distribution on [Min, Max).
type Uniform struct {
	Min float64
	Max float64
}

// NewUniform creates a uniform distribution on [min, max).
// Panics when min >= max.
func NewUniform(min, max float64) *Uniform {
	if min >= max {
		panic("rng: min must be less than max")
	}
	return &Uniform{Min: min, Max: max}
}

func (u *Uniform) Sample(r *Rng) float64 {
	return u.Min + r.UniformFloat()*(u.Max-u.Min)
}

func (u *Uniform) Samples(r *Rng, count int) []float64 {
	return fill(u, r, count)
}

func fill(d Distribution, r *Rng, count int) []float64 {
	out := make([]float64, count)
	for i := range out {
		out[i] = d.Sample(r)
	}
	return out
}
