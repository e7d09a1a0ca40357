package domain

import "strings"

// Theme - визуальная/балансная зона карты.
type Theme uint8

const (
	ThemeGrassland Theme = iota
	ThemeJungle
	ThemeDesert
	ThemeIce
	ThemeSpace
)

var themeNames = [...]string{"Grassland", "Jungle", "Desert", "Ice", "Space"}

func (t Theme) String() string {
	if int(t) < len(themeNames) {
		return themeNames[t]
	}
	return "Grassland"
}

// ParseTheme: неизвестное имя -> Grassland (как в файлах уровней по умолчанию).
func ParseTheme(s string) Theme {
	for i, name := range themeNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return Theme(i)
		}
	}
	return ThemeGrassland
}

func (t Theme) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Theme) UnmarshalText(b []byte) error {
	*t = ParseTheme(string(b))
	return nil
}
