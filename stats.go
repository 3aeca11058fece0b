package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"crossyview/rules"
)

type matchStats struct {
	Matches  int           `json:"matches"`
	Wins     int           `json:"wins"`
	Rounds   int           `json:"rounds"`
	PlayTime time.Duration `json:"play_time"`
}

const statsFile = "stats.json"

// dataDirPath holds the absolute path to the directory holding settings,
// stats and the default asset root. On macOS the path resolves to the app's
// container directory. On other platforms it sits next to the executable.
var dataDirPath = defaultDataDir()

func defaultDataDir() string {
	if runtime.GOOS == "darwin" {
		if home, err := os.UserHomeDir(); err == nil {
			if filepath.Base(home) == "Data" && filepath.Base(filepath.Dir(home)) == "com.crossyview.client" {
				home = filepath.Dir(home)
			} else {
				home = filepath.Join(home, "Library", "Containers", "com.crossyview.client")
			}
			_ = os.MkdirAll(home, 0o755)
			return home
		}
	}
	if exe, err := os.Executable(); err == nil {
		if dir, err := filepath.Abs(filepath.Dir(exe)); err == nil {
			return filepath.Join(dir, "data")
		}
	}
	// Fallback to relative path.
	return "data"
}

var (
	stats      matchStats
	statsMu    sync.Mutex
	statsDirty bool
)

func loadStats() {
	statsMu.Lock()
	stats = matchStats{}
	path := filepath.Join(dataDirPath, statsFile)
	if data, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(data, &stats); err != nil {
			logWarn("load stats: %v", err)
		}
	}
	statsMu.Unlock()
}

// saveStatsEvery flushes dirty stats until done is closed.
func saveStatsEvery(d time.Duration, done <-chan struct{}) {
	ticker := time.NewTicker(d)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			saveStats()
		case <-done:
			return
		}
	}
}

func saveStats() {
	statsMu.Lock()
	if !statsDirty {
		statsMu.Unlock()
		return
	}
	statsDirty = false
	data, err := json.MarshalIndent(stats, "", "  ")
	statsMu.Unlock()
	if err != nil {
		logError("save stats: %v", err)
		return
	}
	if err := os.MkdirAll(dataDirPath, 0o755); err != nil {
		logError("save stats: %v", err)
		return
	}
	path := filepath.Join(dataDirPath, statsFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		logError("save stats: %v", err)
	}
}

// statPhase counts rounds and finished matches. won reports whether the
// local player took the match that just ended.
func statPhase(next rules.Phase, won bool) {
	statsMu.Lock()
	defer statsMu.Unlock()
	switch next {
	case rules.PhaseRound:
		stats.Rounds++
	case rules.PhaseEnd:
		stats.Matches++
		if won {
			stats.Wins++
		}
	default:
		return
	}
	statsDirty = true
}

func statPlayTime(d time.Duration) {
	if d <= 0 {
		return
	}
	statsMu.Lock()
	stats.PlayTime += d
	statsDirty = true
	statsMu.Unlock()
}
