package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/agentdeck/agentdeck/pkg/dashboard"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

type ui struct {
	title func(a ...any) string
	ok    func(a ...any) string
	info  func(a ...any) string
	warn  func(a ...any) string
	err   func(a ...any) string
	dim   func(a ...any) string
}

func newUI() *ui {
	return &ui{
		title: color.New(color.FgHiCyan, color.Bold).SprintFunc(),
		ok:    color.New(color.FgGreen, color.Bold).SprintFunc(),
		info:  color.New(color.FgCyan).SprintFunc(),
		warn:  color.New(color.FgYellow).SprintFunc(),
		err:   color.New(color.FgRed, color.Bold).SprintFunc(),
		dim:   color.New(color.FgHiBlack).SprintFunc(),
	}
}

type profile struct {
	BaseURL        string `yaml:"baseUrl"`
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
}

type cliConfig struct {
	CurrentProfile string             `yaml:"currentProfile"`
	Profiles       map[string]profile `yaml:"profiles"`
}

func main() {
	baseURL := getenv("DECK_BASE_URL", dashboard.DefaultBaseURL)
	timeoutSec := getenvInt("DECK_TIMEOUT_SECONDS", 30)
	profileName := getenv("DECK_PROFILE", "")
	ui := newUI()

	root := &cobra.Command{
		Use:   "deck",
		Short: "agentdeck CLI",
		Long:  "agentdeck CLI for inspecting the dashboard backend and submitting tasks.",
	}
	root.SetHelpTemplate(helpTemplate(ui))
	root.SilenceUsage = true

	root.PersistentFlags().StringVar(&baseURL, "base-url", baseURL, "Backend base URL")
	root.PersistentFlags().IntVar(&timeoutSec, "timeout-seconds", timeoutSec, "Request timeout in seconds")
	root.PersistentFlags().StringVar(&profileName, "profile", profileName, "Config profile")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, _, _ := loadConfig()
		active := resolveProfileName(profileName, cfg)
		prof := cfg.Profiles[active]

		flags := cmd.Flags()
		if !flags.Changed("base-url") {
			if v := strings.TrimSpace(os.Getenv("DECK_BASE_URL")); v != "" {
				baseURL = v
			} else if prof.BaseURL != "" {
				baseURL = prof.BaseURL
			}
		}
		if !flags.Changed("timeout-seconds") {
			if v := strings.TrimSpace(os.Getenv("DECK_TIMEOUT_SECONDS")); v != "" {
				if n, err := strconv.Atoi(v); err == nil && n > 0 {
					timeoutSec = n
				}
			} else if prof.TimeoutSeconds > 0 {
				timeoutSec = prof.TimeoutSeconds
			}
		}
		if !flags.Changed("profile") && profileName == "" && active != "" {
			profileName = active
		}
		return nil
	}

	root.AddCommand(initCmd(&profileName, ui))
	root.AddCommand(healthCmd(&baseURL, &timeoutSec, ui))
	root.AddCommand(snapshotCmd(&baseURL, &timeoutSec, ui))
	root.AddCommand(agentsCmd(&baseURL, &timeoutSec, ui))
	root.AddCommand(taskCmd(&baseURL, &timeoutSec, ui))
	root.AddCommand(watchCmd(&baseURL, &timeoutSec, ui))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.err("[ERROR]"), err.Error())
		os.Exit(1)
	}
}

func initCmd(profileName *string, ui *ui) *cobra.Command {
	var (
		baseURL    string
		timeoutSec int
		noPrompt   bool
	)
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize CLI config",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, cfgPath, err := loadConfig()
			if err != nil {
				return err
			}
			active := resolveProfileName(*profileName, cfg)
			prof := cfg.Profiles[active]

			if baseURL == "" {
				baseURL = prof.BaseURL
			}
			if baseURL == "" {
				baseURL = dashboard.DefaultBaseURL
			}
			if timeoutSec == 0 {
				timeoutSec = prof.TimeoutSeconds
			}
			if timeoutSec == 0 {
				timeoutSec = 30
			}

			if !noPrompt {
				reader := bufio.NewReader(os.Stdin)
				baseURL = prompt(reader, "Backend base URL", baseURL)
				if v := prompt(reader, "Request timeout seconds", strconv.Itoa(timeoutSec)); v != "" {
					if n, err := strconv.Atoi(v); err == nil && n > 0 {
						timeoutSec = n
					}
				}
			}

			prof.BaseURL = strings.TrimSpace(baseURL)
			prof.TimeoutSeconds = timeoutSec

			if cfg.Profiles == nil {
				cfg.Profiles = map[string]profile{}
			}
			cfg.Profiles[active] = prof
			if cfg.CurrentProfile == "" || *profileName != "" {
				cfg.CurrentProfile = active
			}

			if err := saveConfig(cfg, cfgPath); err != nil {
				return err
			}
			fmt.Printf("%s Initialized profile '%s' at %s\n", ui.ok("[OK]"), active, cfgPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&baseURL, "base-url", "", "Backend base URL")
	cmd.Flags().IntVar(&timeoutSec, "timeout-seconds", 0, "Request timeout in seconds")
	cmd.Flags().BoolVar(&noPrompt, "no-prompt", false, "Disable interactive prompts")
	return cmd
}

func healthCmd(baseURL *string, timeoutSec *int, ui *ui) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check backend health",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newDashboardClient(*baseURL, *timeoutSec)
			stop := startSpinner("Checking backend...")
			health, err := c.Health(cmd.Context())
			stop()
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(health)
			}
			badge := ui.ok("[OK]")
			if health.Status != "healthy" {
				badge = ui.warn("[WARN]")
			}
			fmt.Printf("%s Backend %s (%.1f%%)\n", badge, health.Status, health.Health)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print raw JSON")
	return cmd
}

func snapshotCmd(baseURL *string, timeoutSec *int, ui *ui) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Fetch the full dashboard snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newDashboardClient(*baseURL, *timeoutSec)
			stop := startSpinner("Fetching snapshot...")
			snap, err := c.Snapshot(cmd.Context())
			stop()
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(snap)
			}
			fmt.Printf("%s System health: %.1f%%\n", ui.title("deck"), snap.SystemHealth)
			fmt.Printf("%s Workflows: %d | Tasks: %d completed, %d failed | Uptime: %s\n",
				ui.info("•"), snap.ActiveWorkflows, snap.TotalTasksCompleted, snap.TotalTasksFailed, formatUptime(snap.Uptime))
			fmt.Printf("%s Agents (%d):\n", ui.info("•"), len(snap.Agents))
			for _, a := range snap.Agents {
				printAgent(ui, a)
			}
			fmt.Printf("%s as of %s\n", ui.dim("•"), snap.Timestamp)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print raw JSON")
	return cmd
}

func agentsCmd(baseURL *string, timeoutSec *int, ui *ui) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "agents",
		Short: "List agents",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newDashboardClient(*baseURL, *timeoutSec)
			stop := startSpinner("Fetching agents...")
			agents, err := c.Agents(cmd.Context())
			stop()
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(agents)
			}
			if len(agents) == 0 {
				fmt.Printf("%s No agents registered\n", ui.warn("[WARN]"))
				return nil
			}
			fmt.Printf("%s %d agents\n", ui.ok("[OK]"), len(agents))
			for _, a := range agents {
				printAgent(ui, a)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print raw JSON")
	return cmd
}

func taskCmd(baseURL *string, timeoutSec *int, ui *ui) *cobra.Command {
	task := &cobra.Command{
		Use:   "task",
		Short: "Task operations",
	}

	var (
		name        string
		description string
		file        string
		asJSON      bool
	)

	submit := &cobra.Command{
		Use:     "submit",
		Short:   "Submit a task to the backend",
		Example: `deck task submit --name render_video --description "render job 500"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file != "" {
				return submitBatch(cmd.Context(), *baseURL, *timeoutSec, file, ui)
			}
			if strings.TrimSpace(name) == "" {
				return errors.New("name is required (or use --file)")
			}

			c := newDashboardClient(*baseURL, *timeoutSec)
			stop := startSpinner("Submitting task...")
			receipt, err := c.SubmitTask(cmd.Context(), name, description)
			stop()
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(receipt)
			}
			fmt.Printf("%s Task accepted: %s (%s)\n", ui.ok("[OK]"), receipt.TaskID, receipt.Status)
			return nil
		},
	}
	submit.Flags().StringVar(&name, "name", "", "Task name")
	submit.Flags().StringVar(&description, "description", "", "Task description")
	submit.Flags().StringVar(&file, "file", "", "YAML file with a list of tasks to submit")
	submit.Flags().BoolVar(&asJSON, "json", false, "Print raw JSON")

	task.AddCommand(submit)
	return task
}

type batchTask struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

func submitBatch(ctx context.Context, baseURL string, timeoutSec int, path string, ui *ui) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var tasks []batchTask
	if err := yaml.Unmarshal(data, &tasks); err != nil {
		return fmt.Errorf("invalid batch file: %w", err)
	}
	if len(tasks) == 0 {
		return errors.New("batch file has no tasks")
	}
	for i, bt := range tasks {
		if strings.TrimSpace(bt.Name) == "" {
			return fmt.Errorf("batch entry %d is missing a name", i+1)
		}
	}

	c := newDashboardClient(baseURL, timeoutSec)
	bar := progressbar.NewOptions(len(tasks),
		progressbar.OptionSetDescription("Submitting tasks"),
		progressbar.OptionSetWidth(18),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	submitted := 0
	var failures []string
	for _, bt := range tasks {
		_, err := c.SubmitTask(ctx, bt.Name, bt.Description)
		_ = bar.Add(1)
		if err != nil {
			// A transport failure means the backend is gone; the rest of the
			// batch would only repeat it.
			if dashboard.IsTransport(err) {
				_ = bar.Clear()
				return fmt.Errorf("backend unreachable after %d of %d submissions: %w", submitted, len(tasks), err)
			}
			failures = append(failures, fmt.Sprintf("%s: %v", bt.Name, err))
			continue
		}
		submitted++
	}

	for _, f := range failures {
		fmt.Printf("%s %s\n", ui.warn("[WARN]"), f)
	}
	if len(failures) > 0 {
		return fmt.Errorf("%d of %d submissions failed", len(failures), len(tasks))
	}
	fmt.Printf("%s Submitted %d tasks\n", ui.ok("[OK]"), len(tasks))
	return nil
}

func watchCmd(baseURL *string, timeoutSec *int, ui *ui) *cobra.Command {
	var interval int
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll the dashboard snapshot continuously",
		RunE: func(cmd *cobra.Command, args []string) error {
			if interval <= 0 {
				interval = 5
			}
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			c := newDashboardClient(*baseURL, *timeoutSec)
			fmt.Printf("%s Watching %s every %ds (Ctrl-C to stop)\n", ui.info("[INFO]"), c.BaseURL(), interval)

			ticker := time.NewTicker(time.Duration(interval) * time.Second)
			defer ticker.Stop()

			printSnapshotLine(ctx, c, ui)
			for {
				select {
				case <-ctx.Done():
					fmt.Println()
					return nil
				case <-ticker.C:
					printSnapshotLine(ctx, c, ui)
				}
			}
		},
	}
	cmd.Flags().IntVar(&interval, "interval", 5, "Poll interval in seconds")
	return cmd
}

func printSnapshotLine(ctx context.Context, c *dashboard.Client, ui *ui) {
	snap, err := c.Snapshot(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		fmt.Printf("%s %v\n", ui.warn("[WARN]"), err)
		return
	}
	working := 0
	for _, a := range snap.Agents {
		if strings.EqualFold(a.Status, "working") {
			working++
		}
	}
	fmt.Printf("%s health=%.1f%% agents=%d (%d working) workflows=%d done=%d failed=%d\n",
		ui.dim(time.Now().Format("15:04:05")),
		snap.SystemHealth, len(snap.Agents), working,
		snap.ActiveWorkflows, snap.TotalTasksCompleted, snap.TotalTasksFailed)
}

func printAgent(ui *ui, a dashboard.AgentState) {
	task := "-"
	if a.CurrentTask != nil {
		task = *a.CurrentTask
	}
	fmt.Printf("  %-16s %-12s %s done=%d failed=%d up=%s task=%s\n",
		a.AgentID, a.TeamType, colorStatus(ui, a.Status),
		a.TasksCompleted, a.TasksFailed, formatUptime(a.Uptime), task)
}

func colorStatus(ui *ui, status string) string {
	switch strings.ToLower(status) {
	case "working":
		return ui.ok(status)
	case "idle":
		return ui.dim(status)
	case "error", "offline", "blocked":
		return ui.err(status)
	default:
		return status
	}
}

func newDashboardClient(baseURL string, timeoutSec int) *dashboard.Client {
	var opts []dashboard.Option
	if timeoutSec > 0 {
		opts = append(opts, dashboard.WithTimeout(time.Duration(timeoutSec)*time.Second))
	}
	return dashboard.NewClient(baseURL, opts...)
}

func startSpinner(msg string) func() {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return func() {}
	}
	spin := spinner.New(spinner.CharSets[14], 120*time.Millisecond)
	spin.Suffix = " " + msg
	spin.Start()
	return spin.Stop
}

func printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}

func formatUptime(seconds uint64) string {
	days := seconds / 86400
	hours := (seconds % 86400) / 3600
	mins := (seconds % 3600) / 60
	secs := seconds % 60
	switch {
	case days > 0:
		return fmt.Sprintf("%dd%dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh%dm", hours, mins)
	case mins > 0:
		return fmt.Sprintf("%dm%ds", mins, secs)
	default:
		return fmt.Sprintf("%ds", secs)
	}
}

func getenv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func helpTemplate(ui *ui) string {
	title := ui.title("deck")
	return fmt.Sprintf(`%s — CLI for the agentdeck dashboard backend

Usage:
  {{.UseLine}}

Commands:
{{range .Commands}}{{if (or .IsAvailableCommand .IsAdditionalHelpTopicCommand)}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}

Flags:
  {{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}

Global Flags:
  {{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}

Config:
  %s

Examples:
  deck init
  deck health
  deck snapshot
  deck agents --json
  deck task submit --name render_video --description "render job 500"
  deck task submit --file tasks.yaml
  deck watch --interval 10

`, title, configPath())
}

func configPath() string {
	if v := strings.TrimSpace(os.Getenv("DECK_CONFIG_DIR")); v != "" {
		return filepath.Join(v, "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.yaml"
	}
	return filepath.Join(home, ".deck", "config.yaml")
}

func loadConfig() (cliConfig, string, error) {
	path := configPath()
	var cfg cliConfig
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cliConfig{Profiles: map[string]profile{}}, path, nil
		}
		return cfg, path, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, path, err
	}
	if cfg.Profiles == nil {
		cfg.Profiles = map[string]profile{}
	}
	return cfg, path, nil
}

func saveConfig(cfg cliConfig, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func resolveProfileName(flag string, cfg cliConfig) string {
	if strings.TrimSpace(flag) != "" {
		return strings.TrimSpace(flag)
	}
	if v := strings.TrimSpace(os.Getenv("DECK_PROFILE")); v != "" {
		return v
	}
	if cfg.CurrentProfile != "" {
		return cfg.CurrentProfile
	}
	return "default"
}

func prompt(r *bufio.Reader, label, def string) string {
	if def != "" {
		fmt.Printf("%s [%s]: ", label, def)
	} else {
		fmt.Printf("%s: ", label)
	}
	line, _ := r.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return def
	}
	return line
}
