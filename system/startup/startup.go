package startup

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/thatsimonsguy/reflow-controller/db"
	"github.com/thatsimonsguy/reflow-controller/internal/config"
	"github.com/thatsimonsguy/reflow-controller/internal/nvstorage"
	"github.com/thatsimonsguy/reflow-controller/internal/profile"
	"github.com/thatsimonsguy/reflow-controller/internal/reflow"
	"github.com/thatsimonsguy/reflow-controller/internal/store"
)

// Options selects where profiles and config keys are kept.
type Options struct {
	DBPath     string
	Storage    string
	ImagePath  string
	EEPROMSize int
}

// Controller is a started profile manager together with the database it
// runs on.
type Controller struct {
	DB      *sql.DB
	Manager *reflow.Manager
}

// Open opens the database, builds the storage backend and starts a manager
// over the built-in registry. Errors from Manager.Start are returned
// alongside a usable Controller; only a nil Controller is fatal.
func Open(opts Options) (*Controller, error) {
	if opts.EEPROMSize < profile.StorageSize() {
		return nil, fmt.Errorf("eeprom size %d too small, need at least %d", opts.EEPROMSize, profile.StorageSize())
	}

	dbConn, err := db.Open(opts.DBPath)
	if err != nil {
		return nil, err
	}

	var eeprom nvstorage.Storage
	switch opts.Storage {
	case config.StorageSQLite, "":
		eeprom = db.NewEEPROM(dbConn, opts.EEPROMSize)
	case config.StorageImage:
		eeprom = store.New(opts.ImagePath, opts.EEPROMSize)
	default:
		dbConn.Close()
		return nil, fmt.Errorf("unknown storage %q", opts.Storage)
	}

	c := &Controller{
		DB:      dbConn,
		Manager: reflow.New(profile.Default(), eeprom, db.NewConfig(dbConn)),
	}

	if err := c.Manager.Start(); err != nil {
		log.Warn().Err(err).Msg("Profile startup completed with errors")
		return c, err
	}

	log.Info().
		Int("profile", c.Manager.ActiveIndex()).
		Str("name", c.Manager.ActiveName()).
		Msg("Profile manager started")
	return c, nil
}

func (c *Controller) Close() error {
	return c.DB.Close()
}

// InstallService writes a systemd unit that runs the controller binary.
func InstallService(unitPath, execPath, workdir, configFile string) error {
	unit := fmt.Sprintf(`[Unit]
Description=Reflow oven controller
After=network.target

[Service]
Type=simple
WorkingDirectory=%s
ExecStart=%s -config-file %s
Restart=on-failure
RestartSec=5s

[Install]
WantedBy=multi-user.target
`, workdir, execPath, configFile)

	return os.WriteFile(unitPath, []byte(unit), 0644)
}
