package main

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/thatsimonsguy/reflow-controller/db"
	"github.com/thatsimonsguy/reflow-controller/internal/config"
	"github.com/thatsimonsguy/reflow-controller/internal/logging"
	"github.com/thatsimonsguy/reflow-controller/internal/nvstorage"
	"github.com/thatsimonsguy/reflow-controller/internal/profile"
	"github.com/thatsimonsguy/reflow-controller/internal/profilediff"
	"github.com/thatsimonsguy/reflow-controller/internal/profilefile"
	"github.com/thatsimonsguy/reflow-controller/internal/reflow"
	"github.com/thatsimonsguy/reflow-controller/system/startup"
)

// rootFlags holds the persistent flags shared by every command.
type rootFlags struct {
	dbPath     string
	storage    string
	imagePath  string
	eepromSize int
	logLevel   string
}

func newRootCmd() *cobra.Command {
	var flags rootFlags

	root := &cobra.Command{
		Use:           "reflowctl",
		Short:         "Inspect and edit reflow oven profiles",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.InitConsole(config.ParseLogLevel(flags.logLevel))
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.dbPath, "db", "data/reflow.db", "Path to the SQLite database file")
	pf.StringVar(&flags.storage, "storage", config.StorageSQLite, "Custom profile storage: sqlite or image")
	pf.StringVar(&flags.imagePath, "image", "data/eeprom.bin", "EEPROM image file used with --storage image")
	pf.IntVar(&flags.eepromSize, "eeprom-size", 256, "EEPROM size in bytes")
	pf.StringVar(&flags.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	root.AddCommand(
		listCmd(&flags),
		showCmd(&flags),
		dumpCmd(&flags),
		diffCmd(&flags),
		selectCmd(&flags),
		selectSlotCmd(&flags),
		setCmd(&flags),
		exportCmd(&flags),
		importCmd(&flags),
		configCmd(&flags),
		resetConfigCmd(&flags),
		eraseCmd(&flags),
		installServiceCmd(),
	)
	return root
}

var openController = startup.Open

// withManager starts a profile manager on the configured storage and runs fn.
// With requireLoaded set, a storage failure during startup stops the command
// before fn runs, so a slot that could not be read is never written back.
func withManager(flags *rootFlags, requireLoaded bool, fn func(m *reflow.Manager) error) error {
	c, err := openController(startup.Options{
		DBPath:     flags.dbPath,
		Storage:    flags.storage,
		ImagePath:  flags.imagePath,
		EEPROMSize: flags.eepromSize,
	})
	if c == nil {
		return err
	}
	defer c.Close()

	if requireLoaded && errors.Is(err, reflow.ErrStorageFailure) {
		return fmt.Errorf("profile storage not fully loaded, refusing to save: %w", err)
	}
	return fn(c.Manager)
}

func withDB(flags *rootFlags, fn func(dbConn *sql.DB) error) error {
	dbConn, err := db.Open(flags.dbPath)
	if err != nil {
		return err
	}
	defer dbConn.Close()
	return fn(dbConn)
}

func intArg(args []string, i int, name string) (int, error) {
	v, err := strconv.Atoi(args[i])
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", name, args[i])
	}
	return v, nil
}

func listCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List profiles as index: name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withManager(flags, false, func(m *reflow.Manager) error {
				return m.WriteList(cmd.OutOrStdout())
			})
		},
	}
}

func showCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the active profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withManager(flags, false, func(m *reflow.Manager) error {
				return writeActive(cmd.OutOrStdout(), m)
			})
		},
	}
}

func writeActive(w io.Writer, m *reflow.Manager) error {
	fmt.Fprintf(w, "%d: %s", m.ActiveIndex(), m.ActiveName())
	if slot := m.CustomSlotNumber(); slot != 0 {
		fmt.Fprintf(w, " (custom slot %d)", slot)
	}
	fmt.Fprintln(w)
	return m.Dump(w, m.ActiveIndex())
}

func dumpCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "dump <index>",
		Short: "Print the raw setpoints of a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := intArg(args, 0, "index")
			if err != nil {
				return err
			}
			return withManager(flags, false, func(m *reflow.Manager) error {
				return m.Dump(cmd.OutOrStdout(), idx)
			})
		},
	}
}

func diffCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "diff <index> <index>",
		Short: "Show the steps where two profiles differ",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := intArg(args, 0, "index")
			if err != nil {
				return err
			}
			to, err := intArg(args, 1, "index")
			if err != nil {
				return err
			}
			return withManager(flags, false, func(m *reflow.Manager) error {
				a, b := m.Registry().Get(from), m.Registry().Get(to)
				if a == nil || b == nil {
					return fmt.Errorf("diff %d %d: %w", from, to, reflow.ErrOutOfRange)
				}
				out := profilediff.Diff(a, b)
				if out == "" {
					fmt.Fprintf(cmd.OutOrStdout(), "%s and %s are identical\n", a.Name(), b.Name())
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "--- %s\n+++ %s\n%s", a.Name(), b.Name(), out)
				return nil
			})
		},
	}
}

func selectCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "select <index>",
		Short: "Make a profile active; indices wrap around at both ends",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := intArg(args, 0, "index")
			if err != nil {
				return err
			}
			return withManager(flags, false, func(m *reflow.Manager) error {
				if _, err := m.Select(idx); err != nil {
					return err
				}
				return writeActive(cmd.OutOrStdout(), m)
			})
		},
	}
}

func selectSlotCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "select-slot <slot>",
		Short: "Make a custom profile active by its slot number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := intArg(args, 0, "slot")
			if err != nil {
				return err
			}
			return withManager(flags, false, func(m *reflow.Manager) error {
				idx, ok := m.Registry().IndexOfSlot(slot)
				if !ok {
					return fmt.Errorf("no custom slot %d", slot)
				}
				// each invocation is a fresh process, so persist the choice
				if _, err := m.Select(idx); err != nil {
					return err
				}
				return writeActive(cmd.OutOrStdout(), m)
			})
		},
	}
}

func setCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "set <slot> <step> <value>",
		Short: "Change one setpoint of a custom profile and save it",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := intArg(args, 0, "slot")
			if err != nil {
				return err
			}
			step, err := intArg(args, 1, "step")
			if err != nil {
				return err
			}
			value, err := intArg(args, 2, "value")
			if err != nil {
				return err
			}
			if value < 0 || value > profile.SetpointMax {
				return fmt.Errorf("value %d outside 0..%d", value, profile.SetpointMax)
			}

			return withManager(flags, true, func(m *reflow.Manager) error {
				if _, ok := m.Registry().IndexOfSlot(slot); !ok {
					return fmt.Errorf("no custom slot %d", slot)
				}
				m.SelectCustomSlot(slot)
				if !m.SetSetpoint(step, uint16(value)) {
					return fmt.Errorf("step %d outside 0..%d", step, profile.NumSetpoints-1)
				}
				if err := m.SaveCurrent(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "slot %d step %d = %d\n", slot, step, value)
				return nil
			})
		},
	}
}

func exportCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "export <index> <file>",
		Short: "Write a profile to a YAML file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := intArg(args, 0, "index")
			if err != nil {
				return err
			}
			return withManager(flags, false, func(m *reflow.Manager) error {
				p := m.Registry().Get(idx)
				if p == nil {
					return fmt.Errorf("no profile with id %d: %w", idx, reflow.ErrOutOfRange)
				}
				if err := profilefile.WriteFile(args[1], profilefile.FromProfile(p)); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "exported %q to %s\n", p.Name(), args[1])
				return nil
			})
		},
	}
}

func importCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "import <slot> <file>",
		Short: "Load a YAML profile file into a custom slot and save it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := intArg(args, 0, "slot")
			if err != nil {
				return err
			}
			doc, err := profilefile.ReadFile(args[1])
			if err != nil {
				return err
			}

			return withManager(flags, false, func(m *reflow.Manager) error {
				if _, ok := m.Registry().IndexOfSlot(slot); !ok {
					return fmt.Errorf("no custom slot %d", slot)
				}
				m.SelectCustomSlot(slot)
				for i, v := range doc.Values() {
					if !m.SetSetpoint(i, v) {
						return fmt.Errorf("setpoint %d rejected", i)
					}
				}
				if err := m.SaveCurrent(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "imported %q into slot %d\n", doc.Name, slot)
				return nil
			})
		},
	}
}

func configCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the stored configuration keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(flags, func(dbConn *sql.DB) error {
				values, err := db.GetAllConfig(dbConn)
				if err != nil {
					return err
				}
				keys := make([]nvstorage.Key, 0, len(values))
				for k := range values {
					keys = append(keys, k)
				}
				sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

				for _, k := range keys {
					v := values[k]
					if v == nvstorage.Unset {
						fmt.Fprintf(cmd.OutOrStdout(), "%s: unset\n", k)
						continue
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %d\n", k, v)
				}
				return nil
			})
		},
	}
}

func resetConfigCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "reset-config",
		Short: "Clear every configuration key back to unset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(flags, db.ResetConfig)
		},
	}
}

func eraseCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "erase",
		Short: "Zero the custom profile storage held in the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(flags, db.EraseEEPROM)
		},
	}
}

func installServiceCmd() *cobra.Command {
	var unitPath, execPath, workdir, configFile string

	cmd := &cobra.Command{
		Use:   "install-service",
		Short: "Write a systemd unit for the reflow controller",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := startup.InstallService(unitPath, execPath, workdir, configFile); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", unitPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&unitPath, "unit", "/etc/systemd/system/reflow-controller.service", "Unit file to write")
	cmd.Flags().StringVar(&execPath, "exec", "/usr/local/bin/reflow-controller", "Controller binary")
	cmd.Flags().StringVar(&workdir, "workdir", "/var/lib/reflow", "Working directory for the service")
	cmd.Flags().StringVar(&configFile, "config-file", "/etc/reflow/config.json", "Controller config file")
	return cmd
}
