package id

import (
	"log"
	"os"
	"strconv"

	"github.com/bwmarrin/snowflake"
)

var node *snowflake.Node

func init() {
	nodeID := int64(1)
	if v := os.Getenv("SNOWFLAKE_NODE_ID"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			log.Fatalf("invalid SNOWFLAKE_NODE_ID %q: %v", v, err)
		}
		nodeID = parsed
	}

	n, err := snowflake.NewNode(nodeID)
	if err != nil {
		log.Fatalf("initializing snowflake node: %v", err)
	}
	node = n
}

// New returns a process-unique, time-ordered 64-bit id.
func New() int64 {
	return node.Generate().Int64()
}
