package model

import "testing"

func TestValidWineType(t *testing.T) {
	for _, wt := range WineTypes {
		if !ValidWineType(wt) {
			t.Errorf("expected %q to be valid", wt)
		}
	}
	for _, wt := range []string{"", "orange", "RED", "rødvin"} {
		if ValidWineType(wt) {
			t.Errorf("expected %q to be invalid", wt)
		}
	}
}

func TestValidBottleSize(t *testing.T) {
	for _, bs := range BottleSizes {
		if !ValidBottleSize(bs) {
			t.Errorf("expected %q to be valid", bs)
		}
	}
	if ValidBottleSize("1000ml") {
		t.Error("expected '1000ml' to be invalid")
	}
	if ValidBottleSize("") {
		t.Error("expected empty size to be invalid")
	}
}

func TestValidRating(t *testing.T) {
	if !ValidRating(nil) {
		t.Error("expected nil rating to be valid (not rated)")
	}
	for r := 1; r <= 5; r++ {
		r := r
		if !ValidRating(&r) {
			t.Errorf("expected rating %d to be valid", r)
		}
	}
	for _, r := range []int{0, 6, -1} {
		r := r
		if ValidRating(&r) {
			t.Errorf("expected rating %d to be invalid", r)
		}
	}
}
