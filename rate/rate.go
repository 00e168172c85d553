// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package rate describes how many elements an actor peeks, pops or pushes per firing.
package rate

import (
	"fmt"

	"github.com/tochemey/goflow/errors"
)

// Dynamic marks a rate bound that is not known ahead of time.
const Dynamic = -1

// Rate is an immutable (min, max, avg) triple of element counts per firing.
// Any component may be Dynamic.
type Rate struct {
	min int
	max int
	avg int
}

// Create returns a fixed rate where min, max and avg are all n.
// Passing Dynamic yields the fully dynamic rate.
func Create(n int) (Rate, error) {
	return New(n, n, n)
}

// Range returns a rate with the given bounds. The average equals min when
// both bounds are the same and is Dynamic otherwise.
func Range(minimum, maximum int) (Rate, error) {
	avg := Dynamic
	if minimum == maximum {
		avg = minimum
	}
	return New(minimum, maximum, avg)
}

// New returns a rate after validating it:
//   - every component is >= 0 or Dynamic
//   - min <= max when both are known
//   - min == max implies avg == min when all are known
//   - min <= avg <= max when all three are known
func New(minimum, maximum, avg int) (Rate, error) {
	r := Rate{min: minimum, max: maximum, avg: avg}
	if minimum < 0 && minimum != Dynamic ||
		maximum < 0 && maximum != Dynamic ||
		avg < 0 && avg != Dynamic {
		return Rate{}, errors.NewErrIllegalRate(r.String())
	}

	if minimum != Dynamic && maximum != Dynamic {
		if minimum > maximum {
			return Rate{}, errors.NewErrIllegalRate(r.String())
		}
		if avg != Dynamic {
			if minimum == maximum && avg != minimum {
				return Rate{}, errors.NewErrIllegalRate(r.String())
			}
			if avg < minimum || avg > maximum {
				return Rate{}, errors.NewErrIllegalRate(r.String())
			}
		}
	}
	return r, nil
}

// Fixed is like Create but panics on an illegal value.
// It is meant for rate literals in actor declarations.
func Fixed(n int) Rate {
	r, err := Create(n)
	if err != nil {
		panic(err)
	}
	return r
}

// MustRange is like Range but panics on illegal bounds.
func MustRange(minimum, maximum int) Rate {
	r, err := Range(minimum, maximum)
	if err != nil {
		panic(err)
	}
	return r
}

// Zero is the fixed rate of zero elements.
func Zero() Rate {
	return Rate{}
}

// DynamicRate is the rate whose bounds are all unknown.
func DynamicRate() Rate {
	return Rate{min: Dynamic, max: Dynamic, avg: Dynamic}
}

// Min returns the minimum bound
func (r Rate) Min() int {
	return r.min
}

// Max returns the maximum bound
func (r Rate) Max() int {
	return r.max
}

// Avg returns the average
func (r Rate) Avg() int {
	return r.avg
}

// IsStatic reports whether both bounds are known.
func (r Rate) IsStatic() bool {
	return r.min != Dynamic && r.max != Dynamic
}

// IsDynamic reports whether either bound is Dynamic.
func (r Rate) IsDynamic() bool {
	return !r.IsStatic()
}

// IsFixed reports whether the rate is static with equal bounds.
func (r Rate) IsFixed() bool {
	return r.IsStatic() && r.min == r.max
}

// Union merges two rates, typically the rates of sibling branches.
// The result has the lower minimum, the higher maximum and the sum of the
// averages, each being Dynamic when either side is. Rates that do not
// overlap are bridged since a Rate cannot represent gaps. An error is
// returned when the summed average does not fit the merged bounds.
func (r Rate) Union(other Rate) (Rate, error) {
	minimum := Dynamic
	if r.min != Dynamic && other.min != Dynamic {
		minimum = min(r.min, other.min)
	}

	maximum := Dynamic
	if r.max != Dynamic && other.max != Dynamic {
		maximum = max(r.max, other.max)
	}

	avg := Dynamic
	if r.avg != Dynamic && other.avg != Dynamic {
		avg = r.avg + other.avg
	}
	return New(minimum, maximum, avg)
}

// Contains reports whether n lies within the known bounds of the rate.
func (r Rate) Contains(n int) bool {
	if r.min != Dynamic && n < r.min {
		return false
	}
	if r.max != Dynamic && n > r.max {
		return false
	}
	return true
}

// String renders the rate as "[min, max, avg]" with "*" for Dynamic.
func (r Rate) String() string {
	return fmt.Sprintf("[%s, %s, %s]", format(r.min), format(r.max), format(r.avg))
}

func format(n int) string {
	if n == Dynamic {
		return "*"
	}
	return fmt.Sprint(n)
}
