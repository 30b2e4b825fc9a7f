package config

import (
	"log"
	"time"

	pkgcfg "github.com/Skotchmaster/restaurant_pos/pkg/config"
	"github.com/Skotchmaster/restaurant_pos/services/order/internal/inventory"
	"github.com/Skotchmaster/restaurant_pos/services/order/internal/rewards"
)

type ServiceConfig struct {
	pkgcfg.Config

	AwardOn          rewards.AwardPolicy
	StrictCatalog    bool
	ReorderThreshold int64
	Location         *time.Location
}

func Load(envFiles ...string) ServiceConfig {
	base := pkgcfg.Load(envFiles...)
	if base.ServiceName == "" {
		base.ServiceName = "order"
	}
	pkgcfg.MustNonEmpty(base.DatabaseURL, "DATABASE_URL")
	pkgcfg.MustNonEmptyBytes(base.JWTAccessSecret, "JWT_SECRET")

	awardOn := pkgcfg.EnvDefault("REWARDS_AWARD_ON", string(rewards.AwardOnCreation))
	pkgcfg.MustOneOf(awardOn, "REWARDS_AWARD_ON", string(rewards.AwardOnCreation), string(rewards.AwardOnCompletion))

	tz := pkgcfg.EnvDefault("BUSINESS_TZ", "UTC")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Fatalf("env BUSINESS_TZ=%q: %v", tz, err)
	}

	return ServiceConfig{
		Config:           base,
		AwardOn:          rewards.AwardPolicy(awardOn),
		StrictCatalog:    pkgcfg.EnvBoolDefault("CATALOG_STRICT", false),
		ReorderThreshold: int64(pkgcfg.EnvIntDefault("REORDER_THRESHOLD", inventory.DefaultReorderThreshold)),
		Location:         loc,
	}
}
