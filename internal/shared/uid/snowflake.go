package uid

import (
	"context"
	"fmt"

	"github.com/bwmarrin/snowflake"
)

var _ UIDGenerator = (*snowflakeGenerator)(nil)

// snowflake.Node serialises Generate internally.
type snowflakeGenerator struct {
	node *snowflake.Node
}

// NewSnowflake creates a Snowflake-based UIDGenerator.
// nodeID must be unique per gateway replica (0–1023), otherwise two replicas
// may mint the same lock token in the same millisecond.
func NewSnowflake(nodeID int64) (UIDGenerator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("uid: failed to create snowflake node: %w", err)
	}
	return &snowflakeGenerator{node: node}, nil
}

func (g *snowflakeGenerator) Generate(_ context.Context) (string, error) {
	return g.node.Generate().Base36(), nil
}
