// Command village360-admin runs maintenance tasks against the configured database.
package main

import (
	"os"

	"gorm.io/gorm"

	"github.com/Uvais-khan078/village360/config"
	"github.com/Uvais-khan078/village360/database"
)

func main() {
	open := func() (*gorm.DB, error) {
		cfg := config.Load()
		return database.Open(cfg)
	}
	if err := newRootCmd(open).Execute(); err != nil {
		os.Exit(1)
	}
}
