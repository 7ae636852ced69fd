package transport

import (
	"os"

	"github.com/bwmarrin/snowflake"

	"github.com/lonng/conduit/internal/log"
)

// node generates connection ids. The snowflake node id is the pid modulo
// 1024, so processes whose pids differ by a multiple of 1024 share a node id.
var node *snowflake.Node

func init() {
	n, err := snowflake.NewNode(int64(os.Getpid()) % 1024)
	if err != nil {
		log.Fatal("transport: snowflake node init failed.", err)
	}
	node = n
}

// nextID returns a connection id unique within this process.
func nextID() int64 {
	return node.Generate().Int64()
}
