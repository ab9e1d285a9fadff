package main

import (
	"github.com/MarioWinter/coderr/internal/config"
	"github.com/MarioWinter/coderr/internal/logger"
	"github.com/MarioWinter/coderr/internal/migration"
	"github.com/MarioWinter/coderr/internal/server"
	"github.com/MarioWinter/coderr/pkg/db"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,

		// Schema and HTTP surface
		migration.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
