package config

import (
	pkgcfg "github.com/Skotchmaster/restaurant_pos/pkg/config"
)

type Config struct {
	ListenAddr string
	OrderURL   string
	// AuthURL is the external staff login service; empty disables the route.
	AuthURL  string
	LogLevel string
}

func Load(envFiles ...string) Config {
	base := pkgcfg.Load(envFiles...)

	cfg := Config{
		ListenAddr: pkgcfg.EnvDefault("GATEWAY_ADDR", ":8000"),
		OrderURL:   pkgcfg.EnvDefault("ORDER_URL", ""),
		AuthURL:    pkgcfg.EnvDefault("AUTH_URL", ""),
		LogLevel:   base.LogLevel,
	}
	pkgcfg.MustNonEmpty(cfg.OrderURL, "ORDER_URL")
	return cfg
}
