package controllers

import (
	"github.com/inkwell/inkwell-server/utils-go"
	"github.com/uptrace/bun"
)

func accessRoute(db *bun.DB) utils.JwtMiddlewareConfig {
	return utils.JwtMiddlewareConfig{
		ReadFrom: "header",
		Class:    "access",
		Scopes:   []string{"basic"},
		Db:       db,
	}
}

func verifiedRoute(db *bun.DB) utils.JwtMiddlewareConfig {
	config := accessRoute(db)
	config.RequireVerified = true
	return config
}

func superuserRoute(db *bun.DB) utils.JwtMiddlewareConfig {
	config := accessRoute(db)
	config.RequireSuperuser = true
	return config
}
