package repositories

import (
	"errors"
	"fmt"
	"os"
	"store-locator-service/internal/domain"
	"strings"

	"gopkg.in/yaml.v3"
)

// SeedFile is the on-disk store directory plus the static site copy.
type SeedFile struct {
	Stores []StoreSeed `yaml:"stores"`

	domain.SiteContent `yaml:",inline"`
}

// StoreSeed mirrors one directory entry. Latitude and longitude are pointers
// so a missing coordinate is rejected instead of defaulting to 0.
type StoreSeed struct {
	ID        int      `yaml:"id"`
	Name      string   `yaml:"name"`
	Address   string   `yaml:"address"`
	City      string   `yaml:"city"`
	State     string   `yaml:"state"`
	Zip       string   `yaml:"zip"`
	Phone     string   `yaml:"phone"`
	Hours     string   `yaml:"hours"`
	Latitude  *float64 `yaml:"latitude"`
	Longitude *float64 `yaml:"longitude"`
}

// LoadSeedFile reads and validates a YAML (or JSON) seed file.
func LoadSeedFile(path string) (*SeedFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load seed: read %q: %w", path, err)
	}
	return ParseSeed(bytes)
}

// ParseSeed decodes and validates seed data.
func ParseSeed(data []byte) (*SeedFile, error) {
	var seed SeedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("load seed: parse yaml: %w", err)
	}

	seen := make(map[int]struct{}, len(seed.Stores))
	for i, s := range seed.Stores {
		if _, err := s.toDomain(); err != nil {
			return nil, fmt.Errorf("load seed: store at index %d: %w", i+1, err)
		}
		if _, ok := seen[s.ID]; ok {
			return nil, fmt.Errorf("load seed: store at index %d: duplicate id %d", i+1, s.ID)
		}
		seen[s.ID] = struct{}{}
	}

	return &seed, nil
}

// StoreLocations converts the seed entries, preserving file order.
func (f *SeedFile) StoreLocations() []domain.StoreLocation {
	out := make([]domain.StoreLocation, 0, len(f.Stores))
	for _, s := range f.Stores {
		loc, err := s.toDomain()
		if err != nil {
			continue
		}
		out = append(out, loc)
	}
	return out
}

func (s StoreSeed) toDomain() (domain.StoreLocation, error) {
	if s.ID <= 0 {
		return domain.StoreLocation{}, fmt.Errorf("invalid id %d", s.ID)
	}
	if strings.TrimSpace(s.Name) == "" {
		return domain.StoreLocation{}, errors.New("name cannot be empty")
	}
	if strings.TrimSpace(s.Address) == "" {
		return domain.StoreLocation{}, errors.New("address cannot be empty")
	}
	if s.Latitude == nil || s.Longitude == nil {
		return domain.StoreLocation{}, fmt.Errorf("store %d: latitude and longitude are required", s.ID)
	}

	pos := domain.GeoPosition{Lat: *s.Latitude, Lon: *s.Longitude}
	if err := pos.Validate(); err != nil {
		return domain.StoreLocation{}, fmt.Errorf("store %d: %w", s.ID, err)
	}

	return domain.StoreLocation{
		ID:       s.ID,
		Name:     strings.TrimSpace(s.Name),
		Address:  strings.TrimSpace(s.Address),
		City:     strings.TrimSpace(s.City),
		State:    strings.TrimSpace(s.State),
		Zip:      strings.TrimSpace(s.Zip),
		Phone:    strings.TrimSpace(s.Phone),
		Hours:    strings.TrimSpace(s.Hours),
		Position: pos,
	}, nil
}
