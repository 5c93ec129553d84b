package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "Questboard"
	app.Usage = "DotWay quest board backend"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path of the toml config file",
			EnvVars: []string{envPrefix + "CONFIG"},
		},
	}
	app.Before = s.loadConfig
	app.Commands = []*cli.Command{
		{
			Action:      s.startApi,
			Name:        "api",
			Usage:       "Start service api",
			Flags:       []cli.Flag{},
			Category:    "Api",
			Description: `Used for start service api, it serves every quest board api.`,
		},
		{
			Action: s.startMigrate,
			Name:   "migrate",
			Usage:  "Migrate the database",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "version",
					Usage: "Only apply this migration version",
				},
			},
			Category:    "Database",
			Description: `Used to apply every migration which has not been applied yet.`,
		},
	}

	s.app = app
}
