package dungeon

import (
	"bufio"
	"fmt"
	"io"
	"maze-core/internal/domain"
	"maze-core/pkg/logger"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

const defaultPlayableSize = 50

// LoadLevel читает файл уровня в формате .properties.
func LoadLevel(path string) (*Level, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open level %s: %w", path, err)
	}
	defer f.Close()

	level, err := ParseLevel(f)
	if err != nil {
		return nil, fmt.Errorf("parse level %s: %w", path, err)
	}
	level.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return level, nil
}

// ParseLevel разбирает уровень: метаданные (playableWidth, playableHeight, theme,
// damageType, enemyShieldEnabled) и строки вида "x,y=typeId".
// Битые строки пропускаются с предупреждением, как и неизвестные объекты.
func ParseLevel(r io.Reader) (*Level, error) {
	props, err := readProperties(r)
	if err != nil {
		return nil, err
	}

	width := intProp(props, "playableWidth", defaultPlayableSize)
	height := intProp(props, "playableHeight", defaultPlayableSize)
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid playable size %dx%d", width, height)
	}

	b := NewLevel(width, height).
		WithTheme(domain.ParseTheme(props["theme"])).
		WithEnemyShield(parseBool(props["enemyShieldEnabled"]), parseLevelDamage(props["damageType"]))

	// Порядок строк влияет на ID и на то, какая из пересекающихся стен победит.
	keys := make([]string, 0, len(props))
	for key := range props {
		if strings.Contains(key, ",") {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	log := logger.Component("level_loader")
	placed := 0
	for _, key := range keys {
		value := props[key]
		x, y, typeID, err := parseObjectLine(key, value)
		if err != nil {
			log.WithField("line", key+"="+value).Warn("Invalid object line")
			continue
		}
		b.Place(x, y, typeID)
		placed++
	}

	level := b.Build()
	log.WithFields(logrus.Fields{
		"size":    fmt.Sprintf("%dx%d", width, height),
		"objects": placed,
		"skipped": b.Skipped(),
		"enemies": len(level.EnemySpawns),
		"theme":   level.World.Theme.String(),
	}).Info("Level loaded")

	return level, nil
}

// readProperties - упрощенный разбор .properties: key=value или key:value, комментарии # и !.
func readProperties(r io.Reader) (map[string]string, error) {
	props := make(map[string]string)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' || line[0] == '!' {
			continue
		}
		sep := strings.IndexAny(line, "=:")
		if sep < 0 {
			continue
		}
		key := strings.TrimSpace(line[:sep])
		props[key] = strings.TrimSpace(line[sep+1:])
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read properties: %w", err)
	}
	return props, nil
}

func parseObjectLine(key, value string) (int, int, int, error) {
	parts := strings.Split(key, ",")
	if len(parts) != 2 {
		return 0, 0, 0, fmt.Errorf("bad coordinates %q", key)
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, 0, err
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, 0, err
	}
	typeID, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, 0, 0, err
	}
	return x, y, typeID, nil
}

func intProp(props map[string]string, key string, def int) int {
	v, ok := props[key]
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1"
}

// parseLevelDamage: MAGIC и MAGICAL - магический урон, все остальное физический.
func parseLevelDamage(s string) domain.DamageType {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "MAGICAL", "MAGIC":
		return domain.DamageMagical
	}
	return domain.DamagePhysical
}
