package identity

import (
	"context"
	"fmt"
	"net"

	"github.com/oschwald/geoip2-golang"
	"go.uber.org/zap"

	"github.com/mikewolf256/detection-engineering-mini-lab/models"
	"github.com/mikewolf256/detection-engineering-mini-lab/services"
)

// cityReader is the slice of geoip2.Reader the resolver needs.
type cityReader interface {
	City(ip net.IP) (*geoip2.City, error)
	Close() error
}

// MMDBResolver answers geo lookups from a local GeoIP2/GeoLite2 City
// database, for labs that want real lookups without an API key.
type MMDBResolver struct {
	reader cityReader
	logger *zap.Logger
}

// NewMMDBResolver opens the database at dbPath. The caller owns Close.
func NewMMDBResolver(dbPath string, logger *zap.Logger) (*MMDBResolver, error) {
	reader, err := geoip2.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open geoip database %s: %w", dbPath, err)
	}
	return &MMDBResolver{reader: reader, logger: logger}, nil
}

// Close releases the underlying database handle
func (r *MMDBResolver) Close() error {
	return r.reader.Close()
}

// ResolveGeo maps an IP to its ISO country code and English city name
func (r *MMDBResolver) ResolveGeo(ctx context.Context, ipStr string) (*models.GeoRecord, error) {
	ip := net.ParseIP(ipStr)
	if ip == nil {
		return nil, services.NewDomainError(
			services.ErrorTypeResolver,
			fmt.Sprintf("invalid ip address %q", ipStr),
			nil,
		)
	}

	record, err := r.reader.City(ip)
	if err != nil {
		return nil, services.WrapResolver("geoip database lookup", err)
	}

	return &models.GeoRecord{
		IP:      ipStr,
		City:    record.City.Names["en"],
		Country: record.Country.IsoCode,
	}, nil
}
