package value

import (
	"github.com/lguimbarda/min-motion/motion/core"
	"github.com/lguimbarda/min-motion/motion/geom"
)

// Numbers is the Space of number Values, used when scalar operators run on
// plucked data. A non-number operand is a contract violation and panics
// with a *core.ContractError.
type Numbers struct{}

func (Numbers) Zero() Value { return Num(0) }

func (Numbers) Add(a, b Value) Value { return Num(MustFloat("add", a) + MustFloat("add", b)) }
func (Numbers) Sub(a, b Value) Value { return Num(MustFloat("sub", a) - MustFloat("sub", b)) }

func (Numbers) Scale(a Value, k float64) Value { return Num(MustFloat("scale", a) * k) }

func (Numbers) Norm(a Value) float64 {
	return geom.Scalar[float64]{}.Norm(MustFloat("norm", a))
}

func (Numbers) Min(a, b Value) Value {
	return Num(geom.Scalar[float64]{}.Min(MustFloat("min", a), MustFloat("min", b)))
}

func (Numbers) Max(a, b Value) Value {
	return Num(geom.Scalar[float64]{}.Max(MustFloat("max", a), MustFloat("max", b)))
}

// MustFloat returns the number held by v or panics with a ContractError
// naming op.
func MustFloat(op string, v Value) float64 {
	n, ok := v.Float()
	if !ok {
		panic(&core.ContractError{Op: op, Value: v, Want: "number"})
	}
	return n
}

var _ geom.Space[Value] = Numbers{}
