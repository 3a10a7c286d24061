package service

import "testing"

func TestIDGenMonotonicUnderBurst(t *testing.T) {
	var g idGen
	prev := int64(0)
	for i := 0; i < 10000; i++ {
		id := g.next()
		if id <= prev {
			t.Fatalf("id %d not greater than previous %d (iteration %d)", id, prev, i)
		}
		prev = id
	}
}
