package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/androidops/droidctl/constants"
	"github.com/androidops/droidctl/droid"
	"github.com/androidops/droidctl/droid/android"
	"github.com/androidops/droidctl/droid/definitions"
	"github.com/androidops/droidctl/utils"
)

// Config holds the global command line options.
type Config struct {
	DeviceID      string `json:"device_id"`
	ScreenshotDir string `json:"screenshot_dir"`
	JSON          bool   `json:"json"`
	Debug         bool   `json:"debug"`
}

var config = &Config{}

var rootCmd = &cobra.Command{
	Use:   "droidctl",
	Short: "droidctl - drive Android devices through adb",
	Long: `droidctl is a thin command line wrapper over the adb executable:
device discovery, input injection, and screenshot capture.`,
	Example: `  # List online devices
  droidctl devices

  # Tap the middle of a 1080x1920 screen
  droidctl tap 540 960

  # Target a specific device
  droidctl -d emulator-5554 swipe 540 1500 540 500 300

  # Type text into the focused field
  droidctl text "hello world"

  # Save a screenshot
  droidctl screencap -o screen.png`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		if config.Debug {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
	},
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&config.DeviceID, "device-id", "d",
		getEnv("DROIDCTL_DEVICE_ID", ""),
		"Device serial or ip:port (default: the sole online device)")

	rootCmd.PersistentFlags().StringVar(&config.ScreenshotDir, "screenshot-dir",
		getEnv("DROIDCTL_SCREENSHOT_DIR", ""),
		"Keep a copy of every screenshot under this directory")

	rootCmd.PersistentFlags().BoolVar(&config.JSON, "json", false,
		"Machine-readable output")

	rootCmd.PersistentFlags().BoolVar(&config.Debug, "debug", false,
		"Enable debug logging")

	rootCmd.AddCommand(
		devicesCmd(),
		connectCmd(),
		disconnectCmd(),
		tapCmd(),
		doubleTapCmd(),
		swipeCmd(),
		keyCmd(),
		textCmd(),
		screencapCmd(),
		nowCmd(),
		doctorCmd(),
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newDevice() droid.Device {
	device, err := droid.CreateDevice(constants.ADB)
	if err != nil {
		// Unreachable with a fixed device type; keep the log anyway.
		log.Fatal().Err(err).Msg("creating device failed")
	}
	if adb, ok := device.(*android.ADBDevice); ok {
		adb.ScreenshotDir = config.ScreenshotDir
	}
	return device
}

// resolveController validates -d (or auto-selects the sole online
// device) into a Controller every input command can target.
func resolveController(ctx context.Context, device droid.Device) (definitions.Controller, error) {
	controller, ok := device.Connect(ctx, config.DeviceID)
	if !ok {
		if config.DeviceID == "" {
			return "", fmt.Errorf("no single online device to auto-select; pass -d <serial>")
		}
		return "", fmt.Errorf("device %s is not connected", config.DeviceID)
	}
	return controller, nil
}

func devicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "devices",
		Short: "List online devices",
		RunE: func(cmd *cobra.Command, args []string) error {
			devices := newDevice().ListDevices(cmd.Context())

			if config.JSON {
				fmt.Println(utils.JsonIndent(devices))
				return nil
			}

			if len(devices) == 0 {
				fmt.Println("No devices connected.")
				return nil
			}
			for _, d := range devices {
				modelInfo := ""
				if d.Model != "" {
					modelInfo = fmt.Sprintf(" (%s)", d.Model)
				}
				fmt.Printf("%-30s [%s]%s\n", d.Serial, d.ConnectionType, modelInfo)
			}
			return nil
		},
	}
}

func connectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "connect <serial|ip:port>",
		Short: "Validate a device, dialing ip:port addresses first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			controller, ok := newDevice().Connect(cmd.Context(), args[0])
			if !ok {
				return fmt.Errorf("could not connect to %s", args[0])
			}
			fmt.Println(controller.Serial())
			return nil
		},
	}
}

func disconnectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disconnect [ip:port]",
		Short: "Drop a network device connection (all of them without an argument)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			address := ""
			if len(args) > 0 {
				address = args[0]
			}
			if !newDevice().Disconnect(cmd.Context(), address) {
				return fmt.Errorf("disconnect failed")
			}
			return nil
		},
	}
}

func tapCmd() *cobra.Command {
	var durationMS int
	cmd := &cobra.Command{
		Use:   "tap <x> <y>",
		Short: "Tap the screen",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, y, err := parsePoint(args[0], args[1])
			if err != nil {
				return err
			}
			device := newDevice()
			controller, err := resolveController(cmd.Context(), device)
			if err != nil {
				return err
			}
			if !device.Tap(cmd.Context(), controller, x, y, 0, durationMS) {
				return fmt.Errorf("tap failed")
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&durationMS, "duration", 0, "Press duration in milliseconds (long press)")
	return cmd
}

func doubleTapCmd() *cobra.Command {
	var intervalMS int
	cmd := &cobra.Command{
		Use:   "doubletap <x> <y>",
		Short: "Tap the screen twice",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, y, err := parsePoint(args[0], args[1])
			if err != nil {
				return err
			}
			device := newDevice()
			controller, err := resolveController(cmd.Context(), device)
			if err != nil {
				return err
			}
			if !device.DoubleTap(cmd.Context(), controller, x, y, 0, 0, intervalMS) {
				return fmt.Errorf("double tap failed")
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&intervalMS, "interval", 100, "Wait between taps in milliseconds")
	return cmd
}

func swipeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "swipe <x1> <y1> <x2> <y2> [duration-ms]",
		Short: "Swipe between two points",
		Args:  cobra.RangeArgs(4, 5),
		RunE: func(cmd *cobra.Command, args []string) error {
			coords := make([]int, 4)
			for i := range coords {
				v, err := strconv.Atoi(args[i])
				if err != nil {
					return fmt.Errorf("invalid coordinate %q", args[i])
				}
				coords[i] = v
			}
			durationMS := 300
			if len(args) == 5 {
				v, err := strconv.Atoi(args[4])
				if err != nil {
					return fmt.Errorf("invalid duration %q", args[4])
				}
				durationMS = v
			}
			device := newDevice()
			controller, err := resolveController(cmd.Context(), device)
			if err != nil {
				return err
			}
			if !device.Swipe(cmd.Context(), controller, coords[0], coords[1], coords[2], coords[3], durationMS) {
				return fmt.Errorf("swipe failed")
			}
			return nil
		},
	}
}

func keyCmd() *cobra.Command {
	var durationMS int
	cmd := &cobra.Command{
		Use:   "key <keycode|name>",
		Short: "Press a key (integer keycode or back/home/menu/enter/del/power/volup/voldown)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keycode, err := parseKeycode(args[0])
			if err != nil {
				return err
			}
			device := newDevice()
			controller, err := resolveController(cmd.Context(), device)
			if err != nil {
				return err
			}
			if !device.PressKey(cmd.Context(), controller, keycode, durationMS) {
				return fmt.Errorf("key press failed")
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&durationMS, "duration", 0, "Press duration in milliseconds (long press)")
	return cmd
}

func textCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "text <string>",
		Short: "Type text into the focused input field",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			device := newDevice()
			controller, err := resolveController(cmd.Context(), device)
			if err != nil {
				return err
			}
			if !device.InputText(cmd.Context(), controller, strings.Join(args, " ")) {
				return fmt.Errorf("text input failed")
			}
			return nil
		},
	}
}

func screencapCmd() *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "screencap",
		Short: "Capture the screen as PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			device := newDevice()
			controller, err := resolveController(cmd.Context(), device)
			if err != nil {
				return err
			}
			result := device.Screencap(cmd.Context(), controller)
			if result == nil {
				return fmt.Errorf("screencap failed")
			}

			if outPath != "" {
				data, err := result.Decode()
				if err != nil {
					return err
				}
				if err := os.WriteFile(outPath, data, 0o644); err != nil {
					return err
				}
				log.Info().Str("path", outPath).Int("width", result.Width).
					Int("height", result.Height).Msg("screenshot saved")
				return nil
			}

			if config.JSON {
				fmt.Println(utils.JsonString(result))
				return nil
			}
			fmt.Println(result.Data)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Write the PNG to this file instead of stdout")
	return cmd
}

func nowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "now",
		Short: "Print the host's current local time",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(droid.Now())
		},
	}
}

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check adb installation and attached devices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Checking system requirements...")
			fmt.Println(strings.Repeat("-", 50))

			fmt.Print("1. Checking adb installation... ")
			if _, err := exec.LookPath("adb"); err != nil {
				fmt.Println("FAILED")
				fmt.Println("   adb is not installed or not in PATH.")
				fmt.Println("   - macOS: brew install android-platform-tools")
				fmt.Println("   - Linux: sudo apt install android-tools-adb")
				fmt.Println("   - Windows: https://developer.android.com/studio/releases/platform-tools")
				return fmt.Errorf("adb not found")
			}
			version := "installed"
			if out, err := exec.CommandContext(cmd.Context(), "adb", "version").Output(); err == nil {
				if lines := strings.Split(string(out), "\n"); len(lines) > 0 {
					version = strings.TrimSpace(lines[0])
				}
			}
			fmt.Printf("OK (%s)\n", version)

			fmt.Print("2. Checking connected devices... ")
			devices := newDevice().ListDevices(cmd.Context())
			if len(devices) == 0 {
				fmt.Println("FAILED")
				fmt.Println("   No online devices.")
				fmt.Println("   1. Enable USB debugging on the device")
				fmt.Println("   2. Connect via USB and authorize the host")
				fmt.Println("   3. Or connect remotely: droidctl connect <ip>:<port>")
				return fmt.Errorf("no devices")
			}
			serials := lo.Map(devices, func(d definitions.DeviceInfo, _ int) string {
				return d.Serial
			})
			fmt.Printf("OK (%d device(s): %s)\n", len(serials), strings.Join(serials, ", "))

			fmt.Println(strings.Repeat("-", 50))
			fmt.Println("All checks passed.")
			return nil
		},
	}
}

func parsePoint(xs, ys string) (int, int, error) {
	x, err := strconv.Atoi(xs)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid x coordinate %q", xs)
	}
	y, err := strconv.Atoi(ys)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid y coordinate %q", ys)
	}
	return x, y, nil
}

func parseKeycode(s string) (int, error) {
	named := map[string]int{
		"home":    constants.KeycodeHome,
		"back":    constants.KeycodeBack,
		"volup":   constants.KeycodeVolumeUp,
		"voldown": constants.KeycodeVolumeDown,
		"power":   constants.KeycodePower,
		"enter":   constants.KeycodeEnter,
		"del":     constants.KeycodeDel,
		"menu":    constants.KeycodeMenu,
	}
	if code, ok := named[strings.ToLower(s)]; ok {
		return code, nil
	}
	code, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("unknown keycode %q", s)
	}
	return code, nil
}
