package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dinorun/internal/storage"
)

var (
	flagVolume  int
	flagQuality string
	flagShowFPS bool
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change player settings",
	Long: `Print the stored player settings, or change the ones given as flags.
Out of range values are clamped and an unknown quality becomes medium.

Examples:
  dinorun settings
  dinorun settings --volume 80 --quality high
  dinorun settings --show-fps=false`,
	Args: cobra.NoArgs,
	RunE: runSettings,
}

func init() {
	settingsCmd.Flags().IntVar(&flagVolume, "volume", 30, "Volume 0..100")
	settingsCmd.Flags().StringVar(&flagQuality, "quality", "medium", "Graphics quality: low, medium, high")
	settingsCmd.Flags().BoolVar(&flagShowFPS, "show-fps", false, "Show the FPS counter")
}

func runSettings(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open database: %w", err)
	}
	defer store.Close()

	settings, err := store.LoadSettings()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	changed := false
	if flags.Changed("volume") {
		settings.Volume = flagVolume
		changed = true
	}
	if flags.Changed("quality") {
		settings.GraphicsQuality = flagQuality
		changed = true
	}
	if flags.Changed("show-fps") {
		settings.ShowFPS = flagShowFPS
		changed = true
	}

	if changed {
		settings = settings.Normalize()
		if err := store.SaveSettings(settings); err != nil {
			return err
		}
		logger.Info("settings saved")
	}

	fmt.Printf("  Volume:    %d\n", settings.Volume)
	fmt.Printf("  Graphics:  %s\n", settings.GraphicsQuality)
	fmt.Printf("  Show FPS:  %t\n", settings.ShowFPS)
	return nil
}
