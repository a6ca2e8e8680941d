// Package pathutil manages application file paths and locations
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/adrg/xdg"

	"github.com/ayoisaiah/lockin/internal/osutil"
)

// Paths holds all application path configurations.
type Paths struct {
	configDir      string
	configFileName string
	dbFileName     string
	statusFileName string
	logFileName    string

	// Computed absolute paths
	configFilePath string
	dbFilePath     string
	statusFilePath string
	logFilePath    string
}

var (
	paths *Paths
	once  sync.Once
)

// Initialize must be called once at program startup.
func Initialize() error {
	var initErr error

	once.Do(func() {
		paths = &Paths{
			configDir:      "lockin",
			configFileName: "config.yml",
			dbFileName:     "lockin.db",
			statusFileName: "status.json",
			logFileName:    "lockin.log",
		}

		paths.applyEnvironmentOverrides()
		initErr = paths.computePaths()
	})

	return initErr
}

// Must panics if paths haven't been initialized.
func Must() *Paths {
	if paths == nil {
		panic("pathutil.Initialize() must be called before accessing paths")
	}

	return paths
}

func Dir() string {
	return Must().configDir
}

func ConfigFilePath() string {
	return Must().configFilePath
}

func DBFilePath() string {
	return Must().dbFilePath
}

func StatusFilePath() string {
	return Must().statusFilePath
}

func LogFilePath() string {
	return Must().logFilePath
}

func (p *Paths) applyEnvironmentOverrides() {
	lockinEnv := strings.TrimSpace(os.Getenv("LOCKIN_ENV"))
	if lockinEnv != "" {
		p.configFileName = fmt.Sprintf("config_%s.yml", lockinEnv)
		p.dbFileName = fmt.Sprintf("lockin_%s.db", lockinEnv)
		p.statusFileName = fmt.Sprintf("status_%s.json", lockinEnv)
		p.logFileName = fmt.Sprintf("lockin_%s.log", lockinEnv)
	}
}

func (p *Paths) computePaths() error {
	relPath := filepath.Join(p.configDir, p.configFileName)

	configFilePath, err := xdg.ConfigFile(relPath)
	if err != nil {
		return err
	}

	p.configFilePath = configFilePath

	dataDir, err := xdg.DataFile(p.configDir)
	if err != nil {
		return err
	}

	err = os.MkdirAll(dataDir, osutil.DirPermission)
	if err != nil {
		return err
	}

	p.dbFilePath = filepath.Join(dataDir, p.dbFileName)

	p.statusFilePath = filepath.Join(dataDir, p.statusFileName)

	p.logFilePath = filepath.Join(dataDir, "log", p.logFileName)

	return nil
}
