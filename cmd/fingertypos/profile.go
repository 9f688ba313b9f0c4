package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/fingertypos/internal/levels"
	"github.com/verte-zerg/fingertypos/internal/model"
	"github.com/verte-zerg/fingertypos/internal/profile"
	"github.com/verte-zerg/fingertypos/internal/stats"
)

var (
	createLayout string

	settingsLayout string
	settingsGhost  bool
	settingsSound  bool

	exportOut string
)

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage profiles",
	}

	createCmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a profile and make it active",
		Args:  cobra.ExactArgs(1),
		RunE:  runProfileCreateCmd,
	}
	createCmd.Flags().StringVar(&createLayout, "layout", levels.DefaultLayout,
		fmt.Sprintf("keyboard layout (%s)", strings.Join(levels.Layouts(), ", ")))

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List profiles",
		Args:  cobra.NoArgs,
		RunE:  runProfileListCmd,
	}

	useCmd := &cobra.Command{
		Use:   "use <id|name>",
		Short: "Select the active profile",
		Args:  cobra.ExactArgs(1),
		RunE:  runProfileUseCmd,
	}

	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change settings of the active profile",
		Args:  cobra.NoArgs,
		RunE:  runProfileSettingsCmd,
	}
	settingsCmd.Flags().StringVar(&settingsLayout, "layout", "", "keyboard layout")
	settingsCmd.Flags().BoolVar(&settingsGhost, "ghost", true, "show the ghost of your best run")
	settingsCmd.Flags().BoolVar(&settingsSound, "sound", true, "enable sound")

	exportCmd := &cobra.Command{
		Use:   "export [id]",
		Short: "Export a profile as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runProfileExportCmd,
	}
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default: stdout)")

	importCmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Import a profile exported as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runProfileImportCmd,
	}

	cmd.AddCommand(createCmd, listCmd, useCmd, settingsCmd, exportCmd, importCmd)
	return cmd
}

func runProfileCreateCmd(cmd *cobra.Command, args []string) error {
	return withProfiles(func(svc *profile.Service) error {
		p, err := svc.Create(context.Background(), args[0], createLayout)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%s)\n", p.Name, p.ID)
		return err
	})
}

func runProfileListCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	return withProfiles(func(svc *profile.Service) error {
		profiles, err := svc.List(ctx)
		if err != nil {
			return err
		}
		if len(profiles) == 0 {
			logErrln("No profiles yet. Create one with: fingertypos profile create <name>")
			return nil
		}
		activeID, err := svc.ActiveID(ctx)
		if err != nil && !errors.Is(err, profile.ErrNoActiveProfile) {
			return err
		}
		return stats.WriteTable(cmd.OutOrStdout(),
			[]string{"", "Name", "ID", "Level", "Rank", "Layout"},
			profileRows(profiles, activeID),
			map[int]bool{3: true})
	})
}

func profileRows(profiles []model.Profile, activeID string) [][]string {
	return lo.Map(profiles, func(p model.Profile, _ int) []string {
		marker := ""
		if p.ID == activeID {
			marker = "*"
		}
		return []string{marker, p.Name, p.ID, fmt.Sprintf("%d", p.Level), p.Rank, p.Settings.KeyboardLayout}
	})
}

func runProfileUseCmd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	return withProfiles(func(svc *profile.Service) error {
		profiles, err := svc.List(ctx)
		if err != nil {
			return err
		}
		p, err := matchProfile(profiles, args[0])
		if err != nil {
			return err
		}
		if err := svc.SetActive(ctx, p.ID); err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "Active profile: %s\n", p.Name)
		return err
	})
}

// matchProfile finds a profile by exact id or by case-insensitive name.
func matchProfile(profiles []model.Profile, ref string) (model.Profile, error) {
	if p, ok := lo.Find(profiles, func(p model.Profile) bool { return p.ID == ref }); ok {
		return p, nil
	}
	named := lo.Filter(profiles, func(p model.Profile, _ int) bool { return strings.EqualFold(p.Name, ref) })
	switch len(named) {
	case 0:
		return model.Profile{}, fmt.Errorf("%w: %s", profile.ErrProfileNotFound, ref)
	case 1:
		return named[0], nil
	default:
		return model.Profile{}, fmt.Errorf("profile name %q is ambiguous, use the id", ref)
	}
}

func runProfileSettingsCmd(cmd *cobra.Command, _ []string) error {
	var patch profile.SettingsPatch
	if cmd.Flags().Changed("layout") {
		patch.KeyboardLayout = &settingsLayout
	}
	if cmd.Flags().Changed("ghost") {
		patch.ShowGhost = &settingsGhost
	}
	if cmd.Flags().Changed("sound") {
		patch.SoundEnabled = &settingsSound
	}
	return withProfiles(func(svc *profile.Service) error {
		p, err := svc.UpdateSettings(context.Background(), "", patch)
		if err != nil {
			return profileError(err)
		}
		s := p.Settings
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "layout = %s\nghost = %t\nsound = %t\n", s.KeyboardLayout, s.ShowGhost, s.SoundEnabled)
		return err
	})
}

func runProfileExportCmd(cmd *cobra.Command, args []string) error {
	id := ""
	if len(args) == 1 {
		id = args[0]
	}
	return withProfiles(func(svc *profile.Service) error {
		data, err := svc.Export(context.Background(), id)
		if err != nil {
			return profileError(err)
		}
		data = append(data, '\n')
		if exportOut == "" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		if err := os.WriteFile(exportOut, data, 0o644); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
		logErrf("Wrote %s\n", exportOut)
		return nil
	})
}

func runProfileImportCmd(cmd *cobra.Command, args []string) error {
	data, err := readInput(cmd.InOrStdin(), args[0])
	if err != nil {
		return err
	}
	return withProfiles(func(svc *profile.Service) error {
		p, err := svc.Import(context.Background(), data)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "Imported %s (%s)\n", p.Name, p.ID)
		return err
	})
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}
