package app

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kballard/go-shellquote"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/lockin/engine"
	"github.com/ayoisaiah/lockin/internal/config"
	"github.com/ayoisaiah/lockin/internal/osutil"
	"github.com/ayoisaiah/lockin/internal/pathutil"
	"github.com/ayoisaiah/lockin/internal/ui"
	"github.com/ayoisaiah/lockin/ledger"
	"github.com/ayoisaiah/lockin/notify"
	"github.com/ayoisaiah/lockin/posture"
	"github.com/ayoisaiah/lockin/stats"
	"github.com/ayoisaiah/lockin/store"
	"github.com/ayoisaiah/lockin/tui"
)

const (
	envNoColor       = "NO_COLOR"
	envLockinNoColor = "LOCKIN_NO_COLOR"
)

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

// ledgerHelper opens the store and loads the history into a ledger. The
// caller is responsible for closing the returned client.
func ledgerHelper(ctx *cli.Context) (*ledger.Ledger, *store.Client, error) {
	cfg, err := config.Timer(ctx)
	if err != nil {
		return nil, nil, err
	}

	ui.DarkTheme = cfg.Display.DarkTheme

	dbClient, err := store.NewClient(cfg.System.DBPath)
	if err != nil {
		return nil, nil, err
	}

	records, err := dbClient.LoadRecords()
	if err != nil {
		_ = dbClient.Close()
		return nil, nil, err
	}

	return ledger.New(records, dbClient), dbClient, nil
}

// runSessionCmd executes the configured post-session command.
func runSessionCmd(sessionCmd string) error {
	if sessionCmd == "" {
		return nil
	}

	cmdSlice, err := shellquote.Split(sessionCmd)
	if err != nil {
		return fmt.Errorf("unable to parse session_cmd option: %w", err)
	}

	if len(cmdSlice) == 0 {
		return nil
	}

	name := cmdSlice[0]
	args := cmdSlice[1:]

	cmd := exec.Command(name, args...)

	return cmd.Run()
}

// defaultAction starts a focus session and runs the timer interface until
// the session ends.
func defaultAction(ctx *cli.Context) error {
	cfg, err := config.Timer(ctx)
	if err != nil {
		return err
	}

	ui.DarkTheme = cfg.Display.DarkTheme

	dbClient, err := store.NewClient(cfg.System.DBPath)
	if err != nil {
		return err
	}

	defer func() {
		_ = dbClient.Close()
	}()

	records, err := dbClient.LoadRecords()
	if err != nil {
		return err
	}

	led := ledger.New(records, dbClient)

	opts := []engine.Option{
		engine.WithListener(notify.New(cfg)),
	}

	if cfg.Posture.Cmd != "" {
		provider := posture.NewCommand(cfg.Posture.Cmd, cfg.Posture.Timeout)
		opts = append(opts, engine.WithPosture(provider.Score))
	}

	ctrl := engine.NewController(
		engine.NewClock(engine.TickInterval),
		engine.TickInterval,
		led,
		dbClient,
		opts...,
	)

	difficulty := ledger.Difficulty(ctx.String("difficulty"))
	if ctx.String("difficulty") != "" && !difficulty.Valid() {
		return fmt.Errorf(
			"invalid difficulty %q: must be easy, medium, or hard",
			ctx.String("difficulty"),
		)
	}

	err = ctrl.StartSession(ctx.String("goal"), cfg.Session.Duration)
	if err != nil {
		return err
	}

	if difficulty.Valid() {
		ctrl.SetDifficulty(difficulty)
	}

	p := tea.NewProgram(tui.New(ctrl, cfg, cfg.Session.Duration))

	_, err = p.Run()
	if err != nil {
		return err
	}

	_ = os.Remove(pathutil.StatusFilePath())

	return runSessionCmd(cfg.Session.Cmd)
}

// summaryAction aggregates the history into per-goal totals.
func summaryAction(ctx *cli.Context) error {
	led, dbClient, err := ledgerHelper(ctx)
	if err != nil {
		return err
	}

	defer func() {
		_ = dbClient.Close()
	}()

	streak, err := dbClient.LoadStreak()
	if err != nil {
		return err
	}

	s := stats.Compute(led.Records(), streak)

	if ctx.Bool("json") {
		b, err := s.ToJSON()
		if err != nil {
			return err
		}

		fmt.Println(string(b))

		return nil
	}

	s.Print(os.Stdout)

	return nil
}

// streakAction prints the current focus streak.
func streakAction(ctx *cli.Context) error {
	cfg, err := config.Timer(ctx)
	if err != nil {
		return err
	}

	dbClient, err := store.NewClient(cfg.System.DBPath)
	if err != nil {
		return err
	}

	defer func() {
		_ = dbClient.Close()
	}()

	streak, err := dbClient.LoadStreak()
	if err != nil {
		return err
	}

	pterm.Printfln("Current streak: %s", ui.Green(streak))

	return nil
}

// amendAction edits the annotations of a past session.
func amendAction(ctx *cli.Context) error {
	id := ctx.Args().First()
	if id == "" {
		return fmt.Errorf("a session id is required: see 'lockin history'")
	}

	patch := ledger.SessionPatch{}

	if ctx.IsSet("comment") {
		comment := ctx.String("comment")
		patch.Comment = &comment
	}

	if ctx.IsSet("difficulty") {
		difficulty := ledger.Difficulty(ctx.String("difficulty"))
		if !difficulty.Valid() {
			return fmt.Errorf(
				"invalid difficulty %q: must be easy, medium, or hard",
				ctx.String("difficulty"),
			)
		}

		patch.Difficulty = &difficulty
	}

	if ctx.Int("distractions") >= 0 {
		distractions := ctx.Int("distractions")
		patch.Distractions = &distractions
	}

	if patch.Comment == nil && patch.Difficulty == nil &&
		patch.Distractions == nil {
		return fmt.Errorf("nothing to amend: pass at least one flag")
	}

	led, dbClient, err := ledgerHelper(ctx)
	if err != nil {
		return err
	}

	defer func() {
		_ = dbClient.Close()
	}()

	err = led.AmendSession(id, patch)
	if err != nil {
		return err
	}

	pterm.Success.Printfln("session %s updated", id)

	return nil
}

// breakNoteAction attaches a note to a break record.
func breakNoteAction(ctx *cli.Context) error {
	id := ctx.Args().First()
	if id == "" {
		return fmt.Errorf("a break id is required: see 'lockin history'")
	}

	note := firstNonEmptyString(
		ctx.String("note"),
		strings.Join(ctx.Args().Tail(), " "),
	)
	if note == "" {
		return fmt.Errorf("a note is required: pass one with --note")
	}

	led, dbClient, err := ledgerHelper(ctx)
	if err != nil {
		return err
	}

	defer func() {
		_ = dbClient.Close()
	}()

	err = led.UpdateBreakNote(id, note)
	if err != nil {
		return err
	}

	pterm.Success.Printfln("break %s updated", id)

	return nil
}

// clearAction deletes the entire history after a confirmation prompt.
func clearAction(ctx *cli.Context) error {
	led, dbClient, err := ledgerHelper(ctx)
	if err != nil {
		return err
	}

	defer func() {
		_ = dbClient.Close()
	}()

	if led.Len() == 0 {
		pterm.Info.Println("The session history is already empty")
		return nil
	}

	confirmed, err := pterm.DefaultInteractiveConfirm.Show(
		fmt.Sprintf(
			"This will delete all %d history records permanently. Proceed?",
			led.Len(),
		),
	)
	if err != nil {
		return err
	}

	if !confirmed {
		return nil
	}

	led.Clear()

	err = dbClient.SaveStreak(0)
	if err != nil {
		return err
	}

	pterm.Success.Println("session history cleared")

	return nil
}

// statusAction prints the status of a session running in another process.
func statusAction(_ *cli.Context) error {
	return tui.ReportStatus()
}

// editConfigAction opens the lockin config file in the user's default text
// editor.
func editConfigAction(ctx *cli.Context) error {
	defaultEditor := "nano"

	if runtime.GOOS == osutil.Windows {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)

	cfg, err := config.Timer(ctx)
	if err != nil {
		return err
	}

	cmd := exec.Command(editor, cfg.System.ConfigPath)

	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout

	return cmd.Run()
}

func beforeAction(ctx *cli.Context) error {
	// Override the default help template
	cli.AppHelpTemplate = helpText()

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	// Disable colour output if NO_COLOR is set
	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	// Disable colour output if LOCKIN_NO_COLOR is set
	if _, exists := os.LookupEnv(envLockinNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	return nil
}

func afterAction(ctx *cli.Context) error {
	slog.InfoContext(ctx.Context, "exiting lockin")

	return nil
}
