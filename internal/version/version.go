package version

import (
	"fmt"
	"maze-core/internal/domain"
	"time"
)

var (
	BuildDate   string // YYYY-MM-DD (UTC)
	BuildCommit string
	BuildBranch string
	BuildCI     string
)

// buildEpoch - день нулевой сборки. Номер сборки = дни от эпохи.
var buildEpoch = time.Date(
	2025, time.December, 4,
	0, 0, 0, 0,
	time.UTC,
)

// VersionInfo describes the build metadata in structured form.
type VersionInfo struct {
	BuildID         int    `json:"buildId"`
	BuildDate       string `json:"buildDate,omitempty"`
	Commit          string `json:"commit,omitempty"`
	Branch          string `json:"branch,omitempty"`
	CI              string `json:"ci,omitempty"`
	SnapshotVersion uint32 `json:"snapshotVersion"`
	Calculated      bool   `json:"calculated"`
	Error           string `json:"error,omitempty"`
}

func CalculateBuildID() (int, error) {
	if BuildDate == "" {
		return 0, fmt.Errorf("BuildDate is empty")
	}

	t, err := time.ParseInLocation("2006-01-02", BuildDate, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("invalid BuildDate %q: %w", BuildDate, err)
	}

	if t.Before(buildEpoch) {
		return 0, fmt.Errorf("BuildDate %s is before epoch", BuildDate)
	}

	// Считаем в часах: обе даты в UTC, переходов на летнее время нет.
	return int(t.Sub(buildEpoch).Hours() / 24), nil
}

// Info возвращает метаданные сборки и версию формата сохранений.
// Safe to call at any time.
func Info() VersionInfo {
	info := VersionInfo{
		BuildDate:       BuildDate,
		Commit:          BuildCommit,
		Branch:          BuildBranch,
		CI:              BuildCI,
		SnapshotVersion: domain.SnapshotVersion,
	}

	id, err := CalculateBuildID()
	if err != nil {
		info.Error = err.Error()
		return info
	}

	info.BuildID = id
	info.Calculated = true
	return info
}

// String returns a human-readable build string.
func String() string {
	info := Info()

	if !info.Calculated {
		return fmt.Sprintf("Build unknown (%s), snapshots v%d", info.Error, info.SnapshotVersion)
	}

	return fmt.Sprintf(
		"Build %d (%s) commit[%s] branch[%s] ci[%s] snapshots v%d",
		info.BuildID,
		info.BuildDate,
		coalesce(info.Commit, "unknown"),
		coalesce(info.Branch, "unknown"),
		coalesce(info.CI, "local"),
		info.SnapshotVersion,
	)
}

func coalesce(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
