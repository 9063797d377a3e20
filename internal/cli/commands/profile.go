package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapdb/internal/profile"
)

// NewProfileCommand creates the profile command and its management verbs.
func NewProfileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage saved connection profiles",
		Long: `Manage saved connection profiles.

Profiles live in a local store under the user config directory and are
selected per invocation with -p/--profile. Export and import move them
between machines; exports contain credentials verbatim.`,
	}

	cmd.AddCommand(newProfileSaveCommand())
	cmd.AddCommand(newProfileListCommand())
	cmd.AddCommand(newProfileDeleteCommand())
	cmd.AddCommand(newProfileExportCommand())
	cmd.AddCommand(newProfileImportCommand())

	return cmd
}

func newProfileSaveCommand() *cobra.Command {
	p := &profile.Profile{}

	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Save or update a profile",
		Example: `  leapdb profile save primary --type mysql --host db1.internal --port 3306 --username app --password secret --database app
  leapdb profile save cache --type redis --host localhost --port 6379
  leapdb profile save primary --host db2.internal`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := NewCommandContextWithoutConnection(cmd)

			store, err := openProfileStore(cc.Cfg)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			p.Name = args[0]

			// Saving an existing name updates it in place. Unset flags
			// keep the stored values.
			if existing, err := store.GetByName(p.Name); err == nil {
				p.ID = existing.ID
				applyUnsetFields(cmd, p, existing)
			}

			if err := store.Save(p); err != nil {
				return err
			}

			cc.Renderer.Printf("Saved profile %q (%s)\n", p.Name, p.Type)
			return nil
		},
	}

	cmd.Flags().StringVar(&p.Type, "type", "", "Engine type (mysql|postgresql|redis)")
	cmd.Flags().StringVar(&p.Host, "host", "", "Server host")
	cmd.Flags().IntVar(&p.Port, "port", 0, "Server port (0 for the engine default)")
	cmd.Flags().StringVar(&p.Username, "username", "", "Username")
	cmd.Flags().StringVar(&p.Password, "password", "", "Password")
	cmd.Flags().StringVar(&p.Database, "database", "", "Database name (or Redis logical database number)")

	return cmd
}

// applyUnsetFields copies stored values into p for every flag the user did
// not set on this invocation.
func applyUnsetFields(cmd *cobra.Command, p, existing *profile.Profile) {
	if !cmd.Flags().Changed("type") {
		p.Type = existing.Type
	}
	if !cmd.Flags().Changed("host") {
		p.Host = existing.Host
	}
	if !cmd.Flags().Changed("port") {
		p.Port = existing.Port
	}
	if !cmd.Flags().Changed("username") {
		p.Username = existing.Username
	}
	if !cmd.Flags().Changed("password") {
		p.Password = existing.Password
	}
	if !cmd.Flags().Changed("database") {
		p.Database = existing.Database
	}
}

func newProfileListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved profiles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc := NewCommandContextWithoutConnection(cmd)

			store, err := openProfileStore(cc.Cfg)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			profiles, err := store.List()
			if err != nil {
				return err
			}

			// Passwords never render, in any output mode.
			rows := make([][]string, 0, len(profiles))
			for _, p := range profiles {
				port := ""
				if p.Port != 0 {
					port = strconv.Itoa(p.Port)
				}
				rows = append(rows, []string{p.Name, p.Type, p.Host, port, p.Username, p.Database})
			}
			return cc.Renderer.Grid([]string{"NAME", "TYPE", "HOST", "PORT", "USERNAME", "DATABASE"}, rows)
		},
	}
}

func newProfileDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := NewCommandContextWithoutConnection(cmd)

			store, err := openProfileStore(cc.Cfg)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			p, err := store.GetByName(args[0])
			if err != nil {
				return err
			}
			if err := store.Delete(p.ID); err != nil {
				return err
			}

			cc.Renderer.Printf("Deleted profile %q\n", p.Name)
			return nil
		},
	}
}

func newProfileExportCommand() *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all profiles as YAML",
		Long: `Export all profiles as YAML, credentials included. The export is as
sensitive as the store itself; treat the file accordingly.`,
		Example: `  leapdb profile export > profiles.yaml
  leapdb profile export -f profiles.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc := NewCommandContextWithoutConnection(cmd)

			store, err := openProfileStore(cc.Cfg)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			profiles, err := store.List()
			if err != nil {
				return err
			}

			data, err := profile.ExportYAML(profiles)
			if err != nil {
				return err
			}

			if outFile != "" {
				if err := os.WriteFile(outFile, data, 0600); err != nil {
					return fmt.Errorf("failed to write export: %w", err)
				}
				cc.Renderer.Printf("Exported %d profiles to %s\n", len(profiles), outFile)
				return nil
			}

			_, err = cc.Renderer.Out().Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&outFile, "file", "f", "", "Write to a file instead of stdout")

	return cmd
}

func newProfileImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import profiles from a YAML export",
		Long: `Import profiles from a YAML export. Imported profiles keep their ids,
so re-importing an export updates the same profiles rather than
duplicating them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := NewCommandContextWithoutConnection(cmd)

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read import file: %w", err)
			}

			profiles, err := profile.ImportYAML(data)
			if err != nil {
				return err
			}

			store, err := openProfileStore(cc.Cfg)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			for i := range profiles {
				p := &profiles[i]

				// An id-less entry adopts the existing profile of the
				// same name instead of creating a duplicate.
				if p.ID == "" {
					if existing, err := store.GetByName(p.Name); err == nil {
						p.ID = existing.ID
					}
				}

				if err := store.Save(p); err != nil {
					return fmt.Errorf("failed to import profile %q: %w", p.Name, err)
				}
			}

			cc.Renderer.Printf("Imported %d profiles\n", len(profiles))
			return nil
		},
	}
}
