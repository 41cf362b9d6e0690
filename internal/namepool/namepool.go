// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package namepool allocates object names the way a GL
// implementation does: names are non-zero, and a deleted
// name is handed out again before any new one.
package namepool

import (
	"math/bits"
)

// Pool is a set of names above a base value.
// The zero value is ready for use and hands out names
// starting at 1.
type Pool struct {
	base uint32
	s    []uint64
	n    int
}

// New creates a new Pool whose first name is base+1.
func New(base uint32) *Pool { return &Pool{base: base} }

// Gen returns the lowest unused name.
func (p *Pool) Gen() uint32 {
	i := 0
	for ; i < len(p.s); i++ {
		if p.s[i] != ^uint64(0) {
			break
		}
	}
	if i == len(p.s) {
		p.s = append(p.s, 0)
	}
	b := bits.TrailingZeros64(^p.s[i])
	p.s[i] |= 1 << b
	p.n++
	return p.base + 1 + uint32(i*64+b)
}

// index returns the bit position of name.
func (p *Pool) index(name uint32) (i, b int, ok bool) {
	if name <= p.base {
		return
	}
	x := int(name - p.base - 1)
	i, b = x/64, x%64
	ok = i < len(p.s)
	return
}

// Delete frees name.
// It returns false if name was not in use.
func (p *Pool) Delete(name uint32) bool {
	i, b, ok := p.index(name)
	if !ok || p.s[i]&(1<<b) == 0 {
		return false
	}
	p.s[i] &^= 1 << b
	p.n--
	// Drop trailing words that are unused.
	for len(p.s) > 0 && p.s[len(p.s)-1] == 0 {
		p.s = p.s[:len(p.s)-1]
	}
	return true
}

// Live checks whether name is in use.
func (p *Pool) Live(name uint32) bool {
	i, b, ok := p.index(name)
	return ok && p.s[i]&(1<<b) != 0
}

// Len returns the number of names in use.
func (p *Pool) Len() int { return p.n }
