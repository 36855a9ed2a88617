package uid

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

var _ UIDGenerator = uuidv7Generator{}

type uuidv7Generator struct{}

// NewUUIDv7 creates a UUID v7-based UIDGenerator. Needs no coordination
// between replicas.
func NewUUIDv7() (UIDGenerator, error) {
	return uuidv7Generator{}, nil
}

func (uuidv7Generator) Generate(_ context.Context) (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("uid: failed to generate uuid v7: %w", err)
	}
	return id.String(), nil
}
