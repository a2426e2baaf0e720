package checkout

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Step int

const (
	StepCreateTransaction Step = iota + 1
	StepCreateItems
	StepDecrementStock
)

func (s Step) String() string {
	switch s {
	case StepCreateTransaction:
		return "create_transaction"
	case StepCreateItems:
		return "create_items"
	case StepDecrementStock:
		return "decrement_stock"
	default:
		return "unknown"
	}
}

// StepError indica en qué paso se detuvo el checkout. Los pasos anteriores
// ya quedaron persistidos.
type StepError struct {
	Step          Step
	Code          string
	TransactionID primitive.ObjectID
	ProductID     *primitive.ObjectID
	Err           error
}

func (e *StepError) Error() string {
	if e.ProductID != nil {
		return fmt.Sprintf("checkout %s failed at %s for product %s: %v", e.Code, e.Step, e.ProductID.Hex(), e.Err)
	}
	return fmt.Sprintf("checkout %s failed at %s: %v", e.Code, e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
