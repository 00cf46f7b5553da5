package style

import (
	"fmt"
	"strings"
)

// Icon enumerates the icons an element may render.
type Icon uint8

const (
	IconNone Icon = iota
	IconSparkles
	IconZap
	IconShield
	IconStar
	IconHeart
	IconCheck
	IconWrench
	IconCar
	IconStore
	IconTruck
	IconTrendingUp
	IconUsers
	IconGlobe
	IconRocket
	IconAward
	IconTarget
)

var iconNames = [...]string{
	IconNone:       "",
	IconSparkles:   "sparkles",
	IconZap:        "zap",
	IconShield:     "shield",
	IconStar:       "star",
	IconHeart:      "heart",
	IconCheck:      "check",
	IconWrench:     "wrench",
	IconCar:        "car",
	IconStore:      "store",
	IconTruck:      "truck",
	IconTrendingUp: "trending-up",
	IconUsers:      "users",
	IconGlobe:      "globe",
	IconRocket:     "rocket",
	IconAward:      "award",
	IconTarget:     "target",
}

var iconsByKey = func() map[string]Icon {
	m := make(map[string]Icon, len(iconNames))
	for i, name := range iconNames {
		if name != "" {
			m[iconKey(name)] = Icon(i)
		}
	}
	return m
}()

// iconKey folds "TrendingUp", "trending-up" and "trending_up" to the same key.
func iconKey(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(name)
}

// ParseIcon maps a stored icon name to the enum.
func ParseIcon(name string) (Icon, bool) {
	icon, ok := iconsByKey[iconKey(name)]
	return icon, ok
}

// Icons lists every known icon except IconNone.
func Icons() []Icon {
	out := make([]Icon, 0, len(iconNames)-1)
	for i := 1; i < len(iconNames); i++ {
		out = append(out, Icon(i))
	}
	return out
}

func (i Icon) String() string {
	if int(i) < len(iconNames) {
		return iconNames[i]
	}
	return fmt.Sprintf("icon(%d)", uint8(i))
}

// MarshalText implements encoding.TextMarshaler.
func (i Icon) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler; an empty value is IconNone.
func (i *Icon) UnmarshalText(text []byte) error {
	if len(strings.TrimSpace(string(text))) == 0 {
		*i = IconNone
		return nil
	}
	icon, ok := ParseIcon(string(text))
	if !ok {
		return fmt.Errorf("style: unknown icon %q", string(text))
	}
	*i = icon
	return nil
}
