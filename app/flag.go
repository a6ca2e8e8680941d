package app

import "github.com/urfave/cli/v2"

var (
	minutesFlag = &cli.StringFlag{
		Name:    "minutes",
		Aliases: []string{"m"},
		Usage:   "Session length in minutes, or 'unbounded' for an open-ended session (default: 25)",
	}

	unboundedFlag = &cli.BoolFlag{
		Name:    "unbounded",
		Aliases: []string{"u"},
		Usage:   "Run an open-ended session that lasts until stopped",
	}

	goalFlag = &cli.StringFlag{
		Name:    "goal",
		Aliases: []string{"g"},
		Usage:   "What you intend to get done this session",
	}

	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	disableNotificationsFlag = &cli.BoolFlag{
		Name:    "disable-notifications",
		Aliases: []string{"d"},
		Usage:   "Disable the system notification and sound that play after a session is completed",
	}

	sessionCmdFlag = &cli.StringFlag{
		Name:    "session-cmd",
		Aliases: []string{"cmd"},
		Usage:   "Execute an arbitrary command after each session",
	}

	soundFlag = &cli.StringFlag{
		Name:  "sound",
		Usage: "Play an ambient sound continuously during a session. Disable with 'off'",
	}

	sessionSoundFlag = &cli.StringFlag{
		Name:    "session-sound",
		Aliases: []string{"ss"},
		Usage:   "Sound to play when a session ends. Defaults to bell",
	}

	distractionSoundFlag = &cli.StringFlag{
		Name:    "distraction-sound",
		Aliases: []string{"ds"},
		Usage:   "Sound to play when a distraction is logged",
	}

	postureCmdFlag = &cli.StringFlag{
		Name:  "posture-cmd",
		Usage: "Command that prints a posture score (0-100) to capture at session end",
	}

	sinceFlag = &cli.StringFlag{
		Name:  "since",
		Usage: "Only show history entries newer than this (e.g. 'yesterday', '2 weeks ago')",
	}

	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print the output in JSON format",
	}

	noteFlag = &cli.StringFlag{
		Name:    "note",
		Aliases: []string{"n"},
		Usage:   "Note to attach to the break",
	}

	commentFlag = &cli.StringFlag{
		Name:    "comment",
		Aliases: []string{"c"},
		Usage:   "Comment to attach to the session",
	}

	difficultyFlag = &cli.StringFlag{
		Name:  "difficulty",
		Usage: "Difficulty rating for the session: easy, medium, or hard",
	}

	distractionsFlag = &cli.IntFlag{
		Name:  "distractions",
		Usage: "Corrected distraction count for the session",
		Value: -1,
	}
)
