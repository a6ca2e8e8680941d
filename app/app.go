// Package app assembles the lockin command-line interface.
package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/lockin/internal/config"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
}

// Get retrieves the lockin app instance.
func Get() *cli.App {
	lockinApp := &cli.App{
		Name: "lockin",
		Usage: `
		Lockin is a focus session tracker for the command-line. Start a session
		with a goal, log distractions as they happen, and review your focus
		history and streak afterwards.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:   "history",
				Usage:  "Print the history of sessions and breaks",
				Action: historyAction,
				Flags:  []cli.Flag{sinceFlag, jsonFlag},
			},
			{
				Name:   "summary",
				Usage:  "Summarise focus time, distractions, and streak per goal",
				Action: summaryAction,
				Flags:  []cli.Flag{jsonFlag},
			},
			{
				Name:   "streak",
				Usage:  "Print the current focus streak",
				Action: streakAction,
			},
			{
				Name:      "amend",
				Usage:     "Edit the comment, difficulty, or distraction count of a past session",
				ArgsUsage: "<session-id>",
				Action:    amendAction,
				Flags: []cli.Flag{
					commentFlag,
					difficultyFlag,
					distractionsFlag,
				},
			},
			{
				Name:      "break-note",
				Usage:     "Attach a note to a break",
				ArgsUsage: "<break-id>",
				Action:    breakNoteAction,
				Flags:     []cli.Flag{noteFlag},
			},
			{
				Name:   "clear",
				Usage:  "Delete the entire session history",
				Action: clearAction,
			},
			{
				Name:   "status",
				Usage:  "Print the status of a running session",
				Action: statusAction,
			},
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
		},
		Flags: []cli.Flag{
			minutesFlag,
			unboundedFlag,
			goalFlag,
			difficultyFlag,
			sessionCmdFlag,
			soundFlag,
			sessionSoundFlag,
			distractionSoundFlag,
			disableNotificationsFlag,
			postureCmdFlag,
			noColorFlag,
		},
		Action: defaultAction,
		Before: beforeAction,
		After:  afterAction,
	}

	return lockinApp
}
