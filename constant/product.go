package constant

type ProductStatus string

const (
	ProductStatusPending  ProductStatus = "pending"
	ProductStatusActive   ProductStatus = "active"
	ProductStatusReserved ProductStatus = "reserved"
	ProductStatusGiven    ProductStatus = "given"
	ProductStatusSold     ProductStatus = "sold"
	ProductStatusInactive ProductStatus = "inactive"
)

// productStatusTransitions lists the statuses reachable from each status.
// given and sold are terminal.
var productStatusTransitions = map[ProductStatus][]ProductStatus{
	ProductStatusPending:  {ProductStatusActive, ProductStatusInactive},
	ProductStatusActive:   {ProductStatusReserved, ProductStatusGiven, ProductStatusSold, ProductStatusInactive},
	ProductStatusReserved: {ProductStatusActive, ProductStatusGiven, ProductStatusSold, ProductStatusInactive},
	ProductStatusInactive: {ProductStatusActive},
	ProductStatusGiven:    {},
	ProductStatusSold:     {},
}

func (s ProductStatus) Valid() bool {
	_, ok := productStatusTransitions[s]
	return ok
}

// CanTransitionTo reports whether a listing in status s may move to next.
// Staying in the same status is always allowed.
func (s ProductStatus) CanTransitionTo(next ProductStatus) bool {
	if s == next {
		return s.Valid()
	}
	for _, allowed := range productStatusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type ConditionState string

const (
	ConditionNew      ConditionState = "new"
	ConditionLikeNew  ConditionState = "like_new"
	ConditionGood     ConditionState = "good"
	ConditionFair     ConditionState = "fair"
	ConditionForParts ConditionState = "for_parts"
)

func (c ConditionState) Valid() bool {
	switch c {
	case ConditionNew, ConditionLikeNew, ConditionGood, ConditionFair, ConditionForParts:
		return true
	}
	return false
}

const (
	DefaultCurrency = "ILS"

	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
