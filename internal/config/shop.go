package config

import (
	"fmt"     // error wrapping
	"os"      // reading the profile file
	"strings" // blank checks

	"gopkg.in/yaml.v3" // yaml profile decoding
)

// ShopProfile is the letterhead printed at the top of every invoice.
type ShopProfile struct {
	Name    string `yaml:"name"`
	Address string `yaml:"address"`
	Phone   string `yaml:"phone"`
	Footer  string `yaml:"footer"`
}

// DefaultShopProfile is used when no SHOP_PROFILE file is configured.
func DefaultShopProfile() ShopProfile {
	return ShopProfile{
		Name:    "Prime Auto Care Service Center",
		Address: "Bangalore, Karnataka",
	}
}

// LoadShopProfile reads a yaml profile from path.  An empty path yields the
// default profile.  Missing keys fall back to the default name and address.
func LoadShopProfile(path string) (ShopProfile, error) {
	def := DefaultShopProfile()
	if strings.TrimSpace(path) == "" {
		return def, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return def, fmt.Errorf("read shop profile: %w", err)
	}
	var p ShopProfile
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return def, fmt.Errorf("parse shop profile %s: %w", path, err)
	}
	if strings.TrimSpace(p.Name) == "" {
		p.Name = def.Name
	}
	if strings.TrimSpace(p.Address) == "" {
		p.Address = def.Address
	}
	return p, nil
}
