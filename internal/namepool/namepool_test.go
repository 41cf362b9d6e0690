// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package namepool

import (
	"testing"
)

func TestZero(t *testing.T) {
	var p Pool
	if n := p.Len(); n != 0 {
		t.Fatalf("p.Len:\nhave %d\nwant 0", n)
	}
	if p.Live(0) || p.Live(1) {
		t.Fatal("p.Live:\nhave true\nwant false")
	}
	if x := p.Gen(); x != 1 {
		t.Fatalf("p.Gen:\nhave %d\nwant 1", x)
	}
	if p.Delete(0) {
		t.Fatal("p.Delete(0):\nhave true\nwant false")
	}
}

func TestGen(t *testing.T) {
	const base = 1 << 16
	p := New(base)
	for i := range 200 {
		if x := p.Gen(); x != base+1+uint32(i) {
			t.Fatalf("p.Gen:\nhave %d\nwant %d", x, base+1+i)
		}
	}
	if n := p.Len(); n != 200 {
		t.Fatalf("p.Len:\nhave %d\nwant 200", n)
	}
	if !p.Live(base+1) || !p.Live(base+200) || p.Live(base+201) || p.Live(base) {
		t.Fatal("p.Live: unexpected result")
	}
}

func TestDelete(t *testing.T) {
	p := New(0)
	for range 130 {
		p.Gen()
	}
	for _, x := range [...]uint32{70, 3, 129} {
		if !p.Delete(x) {
			t.Fatalf("p.Delete(%d):\nhave false\nwant true", x)
		}
		if p.Delete(x) {
			t.Fatalf("p.Delete(%d) again:\nhave true\nwant false", x)
		}
		if p.Live(x) {
			t.Fatalf("p.Live(%d):\nhave true\nwant false", x)
		}
	}
	if n := p.Len(); n != 127 {
		t.Fatalf("p.Len:\nhave %d\nwant 127", n)
	}
	// Deleted names are reused lowest first.
	for _, want := range [...]uint32{3, 70, 129, 131} {
		if x := p.Gen(); x != want {
			t.Fatalf("p.Gen:\nhave %d\nwant %d", x, want)
		}
	}
	if p.Delete(1000) {
		t.Fatal("p.Delete(1000):\nhave true\nwant false")
	}
}

func TestShrink(t *testing.T) {
	p := New(0)
	for range 65 {
		p.Gen()
	}
	if !p.Delete(65) {
		t.Fatal("p.Delete(65):\nhave false\nwant true")
	}
	if len(p.s) != 1 {
		t.Fatalf("len(p.s):\nhave %d\nwant 1", len(p.s))
	}
	for x := uint32(1); x <= 64; x++ {
		p.Delete(x)
	}
	if len(p.s) != 0 || p.Len() != 0 {
		t.Fatalf("p.s, p.Len:\nhave %v, %d\nwant [], 0", p.s, p.Len())
	}
	if x := p.Gen(); x != 1 {
		t.Fatalf("p.Gen:\nhave %d\nwant 1", x)
	}
}
