package query

import "testing"

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want string
	}{
		{
			name: "plain keyword",
			expr: "carbon measures",
			want: "carbon measures",
		},
		{
			name: "NOT becomes exclusion marker",
			expr: "Tesla NOT stock",
			want: "Tesla -stock",
		},
		{
			name: "AND becomes concatenation",
			expr: "carbon AND accounting",
			want: "carbon accounting",
		},
		{
			name: "OR passes through",
			expr: "hydrogen OR ammonia",
			want: "hydrogen OR ammonia",
		},
		{
			name: "mixed operators",
			expr: "scope 3 AND emissions NOT podcast",
			want: "scope 3 emissions -podcast",
		},
		{
			name: "parentheses untouched",
			expr: "(carbon OR climate) AND policy",
			want: "(carbon OR climate) policy",
		},
		{
			name: "lowercase operators are ordinary words",
			expr: "supply and demand",
			want: "supply and demand",
		},
		{
			name: "empty expression",
			expr: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Translate(tt.expr); got != tt.want {
				t.Errorf("Translate(%q) = %q, want %q", tt.expr, got, tt.want)
			}
		})
	}
}

func TestTranslateIdempotent(t *testing.T) {
	// Input already in provider form must survive a second pass.
	exprs := []string{
		"Tesla -stock",
		"carbon accounting",
		"hydrogen OR ammonia",
		"(carbon OR climate) policy",
	}
	for _, expr := range exprs {
		if got := Translate(expr); got != expr {
			t.Errorf("Translate(%q) = %q, expected unchanged", expr, got)
		}
	}
}
