package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/Black-And-White-Club/hackathon-portal/app"
	"github.com/Black-And-White-Club/hackathon-portal/app/models"
	"github.com/Black-And-White-Club/hackathon-portal/app/modules/gateway/infrastructure/fakeapi"
	leaderboardservice "github.com/Black-And-White-Club/hackathon-portal/app/modules/leaderboard/application"
	"github.com/Black-And-White-Club/hackathon-portal/app/observability"
	"github.com/Black-And-White-Club/hackathon-portal/app/observability/attr"
	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
)

func loginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "log in as an admin or a team",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "role", Value: string(models.RoleTeam), Usage: "admin or team"},
			&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Required: true},
			&cli.StringFlag{Name: "password", Aliases: []string{"p"}, EnvVars: []string{"PORTAL_PASSWORD"}, Required: true},
		},
		Action: func(c *cli.Context) error {
			return withApp(c, func(ctx context.Context, a *app.App) error {
				state, err := a.Session.Login(ctx, models.Role(c.String("role")), c.String("username"), c.String("password"))
				if err != nil {
					return err
				}
				fmt.Fprintf(c.App.Writer, "Logged in as %s (%s)\n", state.User.DisplayHandle, state.User.Role)
				return nil
			})
		},
	}
}

func logoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "end the current session",
		Action: func(c *cli.Context) error {
			return withApp(c, func(ctx context.Context, a *app.App) error {
				if err := a.Session.Logout(ctx); err != nil {
					return err
				}
				fmt.Fprintln(c.App.Writer, "Logged out")
				return nil
			})
		},
	}
}

func whoamiCommand() *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "show the current session",
		Action: func(c *cli.Context) error {
			return withApp(c, func(_ context.Context, a *app.App) error {
				state := a.Session.State()
				if !state.IsAuthenticated {
					fmt.Fprintln(c.App.Writer, "Not logged in")
					return nil
				}
				fmt.Fprintf(c.App.Writer, "%s\t%s\t%s\n", state.User.ID, state.User.Role, state.User.DisplayHandle)
				return nil
			})
		},
	}
}

func tasksCommand() *cli.Command {
	return &cli.Command{
		Name:  "tasks",
		Usage: "list and move tasks through review",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list tasks visible to the current role",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "since", Usage: `only tasks created after this time ("2h", "yesterday", "2026-03-01")`},
					&cli.StringFlag{Name: "status", Usage: "Pending, InReview or Completed"},
				},
				Action: func(c *cli.Context) error {
					since, err := parseSince(c.String("since"), time.Now())
					if err != nil {
						return err
					}
					return withApp(c, func(ctx context.Context, a *app.App) error {
						if err := requireLogin(a); err != nil {
							return err
						}
						a.Resources.FetchTasks(ctx)
						if err := fetchErr(a); err != nil {
							return err
						}
						printTasks(c.App.Writer, filterTasks(a.Resources.Snapshot().Tasks, c.String("status"), since))
						return nil
					})
				},
			},
			{
				Name:  "create",
				Usage: "create a task for a team",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "team", Required: true},
					&cli.StringFlag{Name: "title", Required: true},
					&cli.StringFlag{Name: "description"},
					&cli.StringFlag{Name: "difficulty", Value: "medium"},
					&cli.IntFlag{Name: "round", Value: 1},
					&cli.IntFlag{Name: "points", Value: 10},
				},
				Action: func(c *cli.Context) error {
					return withApp(c, func(ctx context.Context, a *app.App) error {
						task, err := a.Resources.CreateTask(ctx, models.TaskInput{
							Title:       c.String("title"),
							Description: c.String("description"),
							Difficulty:  c.String("difficulty"),
							RoundNumber: c.Int("round"),
							Points:      c.Int("points"),
							TeamID:      c.String("team"),
						})
						if err != nil {
							return err
						}
						printTasks(c.App.Writer, []models.Task{*task})
						return nil
					})
				},
			},
			taskActionCommand("submit", "submit a task for review",
				[]cli.Flag{&cli.StringFlag{Name: "notes", Usage: "notes for the reviewer"}},
				func(ctx context.Context, c *cli.Context, a *app.App, id string) (*models.Task, error) {
					return a.Resources.SubmitTask(ctx, id, c.String("notes"))
				}),
			taskActionCommand("review", "mark a task as in review",
				[]cli.Flag{&cli.BoolFlag{Name: "undo", Usage: "send the task back to Pending"}},
				func(ctx context.Context, c *cli.Context, a *app.App, id string) (*models.Task, error) {
					return a.Resources.SetInReview(ctx, id, !c.Bool("undo"))
				}),
			taskActionCommand("complete", "complete a task and award its points",
				[]cli.Flag{&cli.StringFlag{Name: "notes", Usage: "review notes"}},
				func(ctx context.Context, c *cli.Context, a *app.App, id string) (*models.Task, error) {
					return a.Resources.CompleteTask(ctx, id, c.String("notes"))
				}),
			{
				Name:      "delete",
				Usage:     "delete a task",
				ArgsUsage: "<task-id>",
				Action: func(c *cli.Context) error {
					id := c.Args().First()
					if id == "" {
						return errors.New("task id is required")
					}
					return withApp(c, func(ctx context.Context, a *app.App) error {
						if err := a.Resources.DeleteTask(ctx, id); err != nil {
							return err
						}
						fmt.Fprintf(c.App.Writer, "Deleted task %s\n", id)
						return nil
					})
				},
			},
		},
	}
}

type taskAction func(ctx context.Context, c *cli.Context, a *app.App, id string) (*models.Task, error)

// taskActionCommand loads the task list first so the lifecycle policy can
// reject a move locally before anything is sent.
func taskActionCommand(name, usage string, flags []cli.Flag, action taskAction) *cli.Command {
	return &cli.Command{
		Name:      name,
		Usage:     usage,
		ArgsUsage: "<task-id>",
		Flags:     flags,
		Action: func(c *cli.Context) error {
			id := c.Args().First()
			if id == "" {
				return errors.New("task id is required")
			}
			return withApp(c, func(ctx context.Context, a *app.App) error {
				a.Resources.FetchTasks(ctx)
				task, err := action(ctx, c, a, id)
				if err != nil {
					return err
				}
				printTasks(c.App.Writer, []models.Task{*task})
				return nil
			})
		},
	}
}

func printTasks(w io.Writer, tasks []models.Task) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTEAM\tTITLE\tPOINTS\tSTATUS\tCREATED")
	for _, t := range tasks {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n", t.ID, t.TeamID, t.Title, t.Points, t.Status, t.CreatedAt.Format(time.DateTime))
	}
	_ = tw.Flush()
}

func leaderboardCommand() *cli.Command {
	return &cli.Command{
		Name:  "leaderboard",
		Usage: "show team standings",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "chart", Usage: "also write a PNG bar chart to this path"},
		},
		Action: func(c *cli.Context) error {
			return withApp(c, func(ctx context.Context, a *app.App) error {
				a.Resources.FetchLeaderboard(ctx)
				if err := fetchErr(a); err != nil {
					return err
				}
				entries := a.Resources.Snapshot().Leaderboard

				tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "RANK\tTEAM\tPOINTS\tCOMPLETED")
				for _, e := range entries {
					fmt.Fprintf(tw, "%d\t%s\t%d\t%d\n", e.Rank, e.Title, e.TotalPoints, e.CompletedTaskCount)
				}
				_ = tw.Flush()

				if path := c.String("chart"); path != "" {
					png, err := leaderboardservice.RenderChart(entries, leaderboardservice.DefaultPalette)
					if err != nil {
						return fmt.Errorf("failed to render chart: %w", err)
					}
					if err := os.WriteFile(path, png, 0o644); err != nil {
						return fmt.Errorf("failed to write chart: %w", err)
					}
				}
				return nil
			})
		},
	}
}

func announcementsCommand() *cli.Command {
	return &cli.Command{
		Name:  "announcements",
		Usage: "list announcements",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "since", Usage: "only announcements posted after this time"},
		},
		Action: func(c *cli.Context) error {
			since, err := parseSince(c.String("since"), time.Now())
			if err != nil {
				return err
			}
			return withApp(c, func(ctx context.Context, a *app.App) error {
				if err := requireLogin(a); err != nil {
					return err
				}
				a.Resources.FetchAnnouncements(ctx)
				if err := fetchErr(a); err != nil {
					return err
				}
				for _, ann := range filterAnnouncements(a.Resources.Snapshot().Announcements, since) {
					fmt.Fprintf(c.App.Writer, "[%s] %s\n  %s\n", ann.CreatedAt.Format(time.DateTime), ann.Title, ann.Body)
				}
				return nil
			})
		},
	}
}

func problemsCommand() *cli.Command {
	return &cli.Command{
		Name:  "problems",
		Usage: "manage problem statements",
		Subcommands: []*cli.Command{
			{
				Name:      "import",
				Usage:     "bulk upload problem statements from a .csv or .xlsx file",
				ArgsUsage: "<file>",
				Action: func(c *cli.Context) error {
					path := c.Args().First()
					if path == "" {
						return errors.New("file is required")
					}
					data, err := os.ReadFile(path)
					if err != nil {
						return err
					}
					return withApp(c, func(ctx context.Context, a *app.App) error {
						created, err := a.Resources.BulkUploadProblemStatements(ctx, filepath.Base(path), data)
						if err != nil {
							return err
						}
						fmt.Fprintf(c.App.Writer, "Imported %d problem statements\n", len(created))
						return nil
					})
				},
			},
		},
	}
}

func fakeAPICommand() *cli.Command {
	return &cli.Command{
		Name:  "fake-api",
		Usage: "run an in-memory portal API seeded with demo data",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Value: "127.0.0.1:8080"},
			&cli.Int64Flag{Name: "seed", Value: 42},
			&cli.IntFlag{Name: "teams", Value: 5},
			&cli.StringFlag{Name: "secret", Usage: "token signing secret (random when empty)"},
		},
		Action: func(c *cli.Context) error {
			secret := c.String("secret")
			if secret == "" {
				secret = uuid.NewString()
			}
			logger := observability.NewLogger(observability.LogConfig{Level: "info", ServiceName: "fake-api"})
			api := fakeapi.New(secret, fakeapi.WithLogger(logger))

			tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ROLE\tUSERNAME\tPASSWORD")
			for _, l := range api.SeedDemo(c.Int64("seed"), c.Int("teams")) {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", l.Role, l.Username, l.Password)
			}
			_ = tw.Flush()

			logger.Info("Fake API listening", attr.String("addr", c.String("addr")))
			return api.ListenAndServe(c.Context, c.String("addr"))
		},
	}
}
