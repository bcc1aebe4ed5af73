package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"strings"

	"github.com/bodgit/palc"
	"github.com/bodgit/palc/wav"
	"github.com/urfave/cli/v2"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newCompiler(c *cli.Context) (*palc.Compiler, error) {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}

	return palc.New(c.String("registry"), logger)
}

// Flags are only parsed before the first argument, anything that looks like
// a flag afterwards is a usage error rather than a file name
func checkArgs(c *cli.Context, minArgs, maxArgs int) error {
	if c.NArg() < minArgs || (maxArgs > 0 && c.NArg() > maxArgs) {
		_ = cli.ShowCommandHelp(c, c.Command.Name)
		return cli.Exit("", 1)
	}

	for _, arg := range c.Args().Slice() {
		if strings.HasPrefix(arg, "-") {
			_ = cli.ShowCommandHelp(c, c.Command.Name)
			return cli.Exit(fmt.Sprintf("%s: flag %s must come before the arguments", c.Command.Name, arg), 1)
		}
	}

	return nil
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Name = "palc"
	app.Usage = "PAL engine asset compiler"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "registry",
			EnvVars: []string{"PALC_REGISTRY"},
			Usage:   "path to symbol registry database, disabled if empty",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "sprite",
			Usage:       "Compile a GIF, PNG or other image into a sprite",
			Description: "Writes NAME.c to SOURCE_DIR and NAME.h to INCLUDE_DIR, where NAME is the image file name without its extension. A single frame sprite never loops.",
			ArgsUsage:   "IMAGE SOURCE_DIR INCLUDE_DIR [INCLUDE_PATH]",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "loop",
					Value: true,
					Usage: "loop the animation",
				},
				&cli.BoolFlag{
					Name:  "no-loop",
					Usage: "play the animation once",
				},
			},
			Action: func(c *cli.Context) error {
				if err := checkArgs(c, 3, 4); err != nil {
					return err
				}

				m, err := newCompiler(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer m.Close()

				args := c.Args()
				if err := m.Sprite(args.Get(0), args.Get(1), args.Get(2), args.Get(3), c.Bool("loop") && !c.Bool("no-loop")); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "midi",
			Usage:       "Embed MIDI files as byte arrays",
			Description: "Writes NAME.c to SOURCE_DIR and NAME.h to INCLUDE_DIR for every MIDI file.",
			ArgsUsage:   "FILE... SOURCE_DIR INCLUDE_DIR",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "include-path",
					Usage: "path prepended to the header included by each source",
				},
			},
			Action: func(c *cli.Context) error {
				if err := checkArgs(c, 3, 0); err != nil {
					return err
				}

				m, err := newCompiler(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer m.Close()

				args := c.Args().Slice()
				n := len(args)
				if err := m.MIDI(args[:n-2], args[n-2], args[n-1], c.String("include-path")); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "wav",
			Usage:       "Convert a WAV file into a 16-bit mono sample array",
			Description: "Writes NAME_wav.c to SOURCE_DIR and NAME_wav.h to INCLUDE_DIR.",
			ArgsUsage:   "FILE SOURCE_DIR INCLUDE_DIR [INCLUDE_PATH]",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "rate",
					Value: wav.DefaultSampleRate,
					Usage: "output sample rate in Hz",
				},
			},
			Action: func(c *cli.Context) error {
				if err := checkArgs(c, 3, 4); err != nil {
					return err
				}

				m, err := newCompiler(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer m.Close()

				args := c.Args()
				if err := m.WAV(args.Get(0), args.Get(1), args.Get(2), args.Get(3), c.Int("rate")); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
	}

	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
