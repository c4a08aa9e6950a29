package main

import (
	"context"
	"os"
	_ "time/tzdata"

	"github.com/urfave/cli/v2"

	"villa_backend/internal/app"
	"villa_backend/internal/config"
	"villa_backend/pkg/utils"
)

type appKey struct{}

func openApp(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	utils.InitLogger(cfg.Log.Level, cfg.Log.Format)

	a, err := app.New(c.Context, cfg)
	if err != nil {
		return err
	}
	c.Context = context.WithValue(c.Context, appKey{}, a)
	return nil
}

func closeApp(c *cli.Context) error {
	if a, ok := c.Context.Value(appKey{}).(*app.App); ok && a != nil {
		return a.Close(context.Background())
	}
	return nil
}

func appFrom(c *cli.Context) *app.App {
	a, _ := c.Context.Value(appKey{}).(*app.App)
	return a
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "villactl",
		Usage: "Reservation reports from the command line",
		Commands: []*cli.Command{
			{
				Name:   "gro-summary",
				Usage:  "Print per-GRO reservation totals, highest revenue first",
				Flags:  []cli.Flag{jsonFlag()},
				Before: openApp,
				After:  closeApp,
				Action: func(c *cli.Context) error {
					return printGroSummary(c.Context, c.App.Writer, appFrom(c).Analytics, c.Bool("json"))
				},
			},
			{
				Name:   "dashboard",
				Usage:  "Print the dashboard counters",
				Flags:  []cli.Flag{jsonFlag()},
				Before: openApp,
				After:  closeApp,
				Action: func(c *cli.Context) error {
					return printDashboard(c.Context, c.App.Writer, appFrom(c).Analytics, c.Bool("json"))
				},
			},
			{
				Name:  "monthly-revenue",
				Usage: "Print revenue per calendar month of a year",
				Flags: []cli.Flag{
					jsonFlag(),
					&cli.IntFlag{
						Name:  "year",
						Usage: "Report year, defaults to the current year",
					},
				},
				Before: openApp,
				After:  closeApp,
				Action: func(c *cli.Context) error {
					return printMonthlyRevenue(c.Context, c.App.Writer, appFrom(c).Analytics, c.Int("year"), c.Bool("json"))
				},
			},
			{
				Name:  "export-gro",
				Usage: "Write the GRO summary workbook",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "Output file, defaults to gro-summary-YYYYMMDD.xlsx",
					},
				},
				Before: openApp,
				After:  closeApp,
				Action: func(c *cli.Context) error {
					return exportGroSummary(c.Context, appFrom(c).Analytics, c.String("out"))
				},
			},
		},
	}
}

func jsonFlag() *cli.BoolFlag {
	return &cli.BoolFlag{Name: "json", Usage: "Print JSON instead of a table"}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		utils.LogError(err, "villactl failed")
		os.Exit(1)
	}
}
