// Command jpctl runs maintenance tasks against the shop database: schema
// migration, admin seeding, OBD catalog imports and session pruning.
package main

import (
	"github.com/bodthegod/jpperformancecars-backend/cmd/jpctl/commands"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	commands.Execute()
}
