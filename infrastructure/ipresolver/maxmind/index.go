package maxmind

import (
	"context"
	"os"
	"sync"

	"github.com/savaki/geoip2"
	"veriface.io/infrastructure/ipresolver/types"
	"veriface.io/infrastructure/logger"
)

type MaxMindIPResolver struct {
	api  *geoip2.Api
	once sync.Once
}

func (mmResolver *MaxMindIPResolver) LookUp(ipAddress string) (*types.IPResult, error) {
	mmResolver.once.Do(func() {
		mmResolver.api = geoip2.New(os.Getenv("MAXMIND_ACCOUNT_ID"), os.Getenv("MAXMIND_LICENSE_KEY"))
	})
	if os.Getenv("ENV") == "development" {
		ipAddress = "102.89.23.187"
	}
	result, err := mmResolver.api.City(context.Background(), ipAddress)
	if err != nil {
		return nil, err
	}
	logger.Info("ip data fetched successfully")
	return &types.IPResult{
		Longitude:     result.Location.Longitude,
		Latitude:      result.Location.Latitude,
		City:          result.City.Names["en"],
		CountryCode:   result.Country.IsoCode,
		AcuracyRadius: result.Location.AccuracyRadius,
		Anonymous:     result.Traits.IsAnonymousProxy,
		IPAddress:     ipAddress,
	}, nil
}
