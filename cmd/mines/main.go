package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/scores"
)

var log = logrus.New()

func defaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".mines"
	}
	return filepath.Join(dir, "mines")
}

var globalFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "data",
		Usage:   "directory holding the local score database",
		EnvVars: []string{"MINES_DATA"},
		Value:   defaultDataDir(),
	},
	&cli.StringFlag{
		Name:    "log-file",
		Usage:   "log file path (default: DATA/mines.log)",
		EnvVars: []string{"MINES_LOG_FILE"},
	},
	&cli.BoolFlag{
		Name:  "debug",
		Usage: "log debug messages",
	},
	&cli.StringFlag{
		Name:    "server",
		Usage:   "score server URL",
		EnvVars: []string{"MINES_SERVER_URL"},
	},
}

func main() {
	app := &cli.App{
		Name:  "mines",
		Usage: "play minesweeper in the terminal",
		Flags: globalFlags,
		Before: func(c *cli.Context) error {
			logFile := c.String("log-file")
			if logFile == "" {
				logFile = filepath.Join(c.String("data"), "mines.log")
			}
			if err := setupLogging(logFile, c.Bool("debug")); err != nil {
				return fmt.Errorf("unable to set up logging: %w", err)
			}
			mines.Log = newSlogLogger(log)
			return nil
		},
		Commands: []*cli.Command{
			playCommand,
			scoresCommand,
			loginCommand,
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.RunContext(ctx, os.Args); err != nil {
		log.WithError(err).Error("exit")
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func openLocal(c *cli.Context) (*scores.Local, error) {
	dir := c.String("data")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return scores.OpenLocal(filepath.Join(dir, "scores.db"))
}

func boardSize(c *cli.Context) (rows, cols, count int, err error) {
	if c.IsSet("difficulty") {
		d, err := mines.ParseDifficulty(c.String("difficulty"))
		if err != nil {
			return 0, 0, 0, err
		}
		if rows, cols, count, ok := d.Preset(); ok {
			return rows, cols, count, nil
		}
	}
	return c.Int("rows"), c.Int("cols"), c.Int("mines"), nil
}

var playCommand = &cli.Command{
	Name:  "play",
	Usage: "start an interactive game reading commands from stdin",
	Flags: []cli.Flag{
		&cli.IntFlag{Name: "rows", Value: 9},
		&cli.IntFlag{Name: "cols", Value: 9},
		&cli.IntFlag{Name: "mines", Value: 10},
		&cli.StringFlag{Name: "difficulty", Usage: "easy, medium or hard; overrides the size flags"},
		&cli.Uint64Flag{Name: "seed", Usage: "seed for reproducible boards"},
		&cli.StringFlag{Name: "name", Usage: "name stored with local scores", Value: "Local"},
		&cli.StringFlag{Name: "token", Usage: "session token for online scores", EnvVars: []string{"MINES_TOKEN"}},
		&cli.StringFlag{Name: "username", Usage: "online username the token belongs to"},
	},
	Action: func(c *cli.Context) error {
		rows, cols, count, err := boardSize(c)
		if err != nil {
			return err
		}

		local, err := openLocal(c)
		if err != nil {
			return fmt.Errorf("unable to open score database: %w", err)
		}
		defer local.Close()

		saver := &scores.Saver{Local: local}
		if server := c.String("server"); server != "" {
			saver.Remote = scores.NewClient(server, nil)
		}

		con := &console{
			in:  bufio.NewScanner(c.App.Reader),
			out: c.App.Writer,
			now: time.Now,
		}
		opts := []mines.Option{
			mines.WithScoreSaver(saver),
			mines.WithObserver(con),
			mines.WithPlayerName(c.String("name")),
		}
		if c.IsSet("seed") {
			seed := c.Uint64("seed")
			opts = append(opts, mines.WithRand(rand.New(rand.NewPCG(seed, seed))))
		}
		con.game = mines.New(rows, cols, count, opts...)

		if token := c.String("token"); token != "" && saver.Remote != nil {
			con.game.SetSession(&mines.Session{
				Username: c.String("username"),
				Token:    token,
			})
		}

		log.WithFields(logrus.Fields{
			"rows":   con.game.Rows(),
			"cols":   con.game.Cols(),
			"mines":  con.game.TotalMines(),
			"online": con.game.Session() != nil,
		}).Info("game started")

		return con.run()
	},
}

var scoresCommand = &cli.Command{
	Name:  "scores",
	Usage: "list saved scores",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "difficulty", Usage: "only list this difficulty"},
		&cli.BoolFlag{Name: "online", Usage: "list the score server leaderboard"},
		&cli.BoolFlag{Name: "clear", Usage: "delete every local score"},
	},
	Action: func(c *cli.Context) error {
		var difficulty *mines.Difficulty
		if c.IsSet("difficulty") {
			d, err := mines.ParseDifficulty(c.String("difficulty"))
			if err != nil {
				return err
			}
			difficulty = &d
		}

		w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
		defer w.Flush()

		if c.Bool("online") {
			server := c.String("server")
			if server == "" {
				return errors.New("--online needs --server")
			}
			records, err := scores.NewClient(server, nil).List(c.Context, difficulty)
			if err != nil {
				return err
			}
			fmt.Fprintln(w, "PLAYER\tDIFFICULTY\tTIME\tMINES\tDATE")
			for _, r := range records {
				fmt.Fprintf(w, "%s\t%s\t%ds\t%d/%d\t%s\n", r.Username, r.Difficulty,
					r.ElapsedTime, r.FoundMines, r.TotalMines, r.PlayedAt.Local().Format(time.DateTime))
			}
			return nil
		}

		local, err := openLocal(c)
		if err != nil {
			return fmt.Errorf("unable to open score database: %w", err)
		}
		defer local.Close()

		if c.Bool("clear") {
			if err := local.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, "local scores cleared")
			return nil
		}

		list, err := local.List(difficulty)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "NAME\tDIFFICULTY\tTIME\tMINES\tDATE")
		for _, s := range list {
			fmt.Fprintf(w, "%s\t%s\t%ds\t%d/%d\t%s\n", s.Name, s.Difficulty,
				s.ElapsedTime, s.FoundMines, s.TotalMines, s.PlayedAt.Local().Format(time.DateTime))
		}
		return nil
	},
}

var loginCommand = &cli.Command{
	Name:  "login",
	Usage: "sign in to the score server and print a session token",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "username", Required: true},
		&cli.StringFlag{Name: "password", Required: true, EnvVars: []string{"MINES_PASSWORD"}},
		&cli.BoolFlag{Name: "register", Usage: "create the account first"},
	},
	Action: func(c *cli.Context) error {
		server := c.String("server")
		if server == "" {
			return errors.New("login needs --server")
		}
		ctx, cancel := context.WithTimeout(c.Context, time.Second*10)
		defer cancel()

		session, err := scores.NewClient(server, nil).Login(
			ctx, c.String("username"), c.String("password"), c.Bool("register"),
		)
		if err != nil {
			return err
		}
		log.WithField("username", session.Username).Info("signed in")
		fmt.Fprintf(c.App.Writer, "export MINES_TOKEN=%s\n", session.Token)
		return nil
	},
}
