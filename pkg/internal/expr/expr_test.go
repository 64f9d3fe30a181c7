package expr

import "testing"

func TestEvaluate(t *testing.T) {
	tests := []struct {
		expression string
		expected   float64
		ok         bool
	}{
		{"1+3", 4, true},
		{"2*3+4", 10, true},
		{"2+3*4", 14, true},
		{"(1+2)*3", 9, true},
		{"10%3", 1, true},
		{"7/2", 3.5, true},
		{"-3+5", 2, true},
		{"--3", 3, true},
		{"2*-3", -6, true},
		{"+4", 4, true},
		{"1e2+1", 101, true},
		{"2.5e-1*4", 1, true},
		{"1_000/10", 100, true},
		{" 1 + 1 ", 2, true},
		{"10-2-3", 5, true},
		{"1/0", 0, false},
		{"0/0", 0, false},
		{"(1+2", 0, false},
		{"1+2)", 0, false},
		{"1+", 0, false},
		{"*", 0, false},
		{"", 0, false},
		{"1+a", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			got, ok := Evaluate(tt.expression)
			if ok != tt.ok {
				t.Fatalf("Evaluate(%q) ok = %v, want %v", tt.expression, ok, tt.ok)
			}
			if ok && got != tt.expected {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.expression, got, tt.expected)
			}
		})
	}
}
