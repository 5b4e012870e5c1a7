package rules

import "testing"

func TestApplyConwayRules(t *testing.T) {
	for neighbors := 0; neighbors <= 8; neighbors++ {
		survives := neighbors == 2 || neighbors == 3
		if got := ApplyConwayRules(neighbors, true); got != survives {
			t.Errorf("live cell with %d neighbors: expected %v, got %v", neighbors, survives, got)
		}

		born := neighbors == 3
		if got := ApplyConwayRules(neighbors, false); got != born {
			t.Errorf("dead cell with %d neighbors: expected %v, got %v", neighbors, born, got)
		}
	}
}
