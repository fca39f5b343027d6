package constant

import "testing"

func TestProductStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from ProductStatus
		to   ProductStatus
		want bool
	}{
		{ProductStatusActive, ProductStatusGiven, true},
		{ProductStatusActive, ProductStatusReserved, true},
		{ProductStatusReserved, ProductStatusActive, true},
		{ProductStatusPending, ProductStatusActive, true},
		{ProductStatusInactive, ProductStatusActive, true},
		{ProductStatusActive, ProductStatusActive, true},
		{ProductStatusGiven, ProductStatusActive, false},
		{ProductStatusSold, ProductStatusGiven, false},
		{ProductStatusInactive, ProductStatusGiven, false},
		{ProductStatusPending, ProductStatusSold, false},
		{ProductStatus("archived"), ProductStatus("archived"), false},
		{ProductStatusActive, ProductStatus("archived"), false},
	}
	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("%s -> %s = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestConditionState_Valid(t *testing.T) {
	for _, c := range []ConditionState{ConditionNew, ConditionLikeNew, ConditionGood, ConditionFair, ConditionForParts} {
		if !c.Valid() {
			t.Errorf("%s should be valid", c)
		}
	}
	if ConditionState("broken").Valid() {
		t.Error("broken should not be valid")
	}
}
