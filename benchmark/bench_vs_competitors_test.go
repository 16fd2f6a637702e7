package benchmark_test

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/urfave/cli/v2"

	"github.com/dzonerzy/go-snapargs/snap"
)

// Each tool parses its native syntax into typed values so the comparison
// covers tokenizing, matching and conversion.

type simpleOptions struct {
	Port    int
	Verbose bool
}

func BenchmarkSimpleCLI_GoSnapArgs(b *testing.B) {
	model := snap.NewModel().Delimiters('-').
		Arg("port").One().Back().
		Arg("verbose").Back().
		MustBuild()
	parser, err := snap.NewParser(model, snap.WithProgramPath(""))
	if err != nil {
		b.Fatal(err)
	}

	args := []string{"-port", "9000", "-verbose"}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		r, err := parser.Parse(args)
		if err != nil {
			b.Fatal(err)
		}
		if _, err := snap.Bind[simpleOptions](r); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSimpleCLI_Cobra(b *testing.B) {
	args := []string{"--port", "9000", "--verbose"}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		var opts simpleOptions
		rootCmd := &cobra.Command{
			Use: "bench",
			Run: func(_ *cobra.Command, _ []string) {},
		}
		rootCmd.Flags().IntVarP(&opts.Port, "port", "p", 8080, "Server port")
		rootCmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Verbose output")
		rootCmd.SetArgs(args)
		_ = rootCmd.Execute()
	}
}

func BenchmarkSimpleCLI_Urfave(b *testing.B) {
	args := []string{"bench", "-port", "9000", "-verbose"}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		var opts simpleOptions
		app := &cli.App{
			Name: "bench",
			Flags: []cli.Flag{
				&cli.IntFlag{Name: "port", Value: 8080, Usage: "Server port", Destination: &opts.Port},
				&cli.BoolFlag{Name: "verbose", Usage: "Verbose output", Destination: &opts.Verbose},
			},
			Action: func(_ *cli.Context) error { return nil },
		}
		_ = app.Run(args)
	}
}

type manyOptions struct {
	Flag1, Flag2, Flag3, Flag4, Flag5 string
	Port                              int
	Verbose, Debug, Quiet, Force      bool
}

func BenchmarkManyFlags_GoSnapArgs(b *testing.B) {
	builder := snap.NewModel().Delimiters('-')
	for _, name := range []string{"flag1", "flag2", "flag3", "flag4", "flag5", "port"} {
		builder.Arg(name).One()
	}
	for _, name := range []string{"verbose", "debug", "quiet", "force"} {
		builder.Arg(name)
	}
	parser, err := snap.NewParser(builder.MustBuild(), snap.WithProgramPath(""))
	if err != nil {
		b.Fatal(err)
	}

	args := []string{
		"-flag1", "test1",
		"-flag2", "test2",
		"-flag3", "test3",
		"-port", "9000",
		"-verbose",
		"-debug",
	}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		r, err := parser.Parse(args)
		if err != nil {
			b.Fatal(err)
		}
		if _, err := snap.Bind[manyOptions](r); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkManyFlags_Cobra(b *testing.B) {
	args := []string{
		"--flag1", "test1",
		"--flag2", "test2",
		"--flag3", "test3",
		"--port", "9000",
		"--verbose",
		"--debug",
	}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		var opts manyOptions
		rootCmd := &cobra.Command{
			Use: "bench",
			Run: func(_ *cobra.Command, _ []string) {},
		}
		rootCmd.Flags().StringVar(&opts.Flag1, "flag1", "value1", "Flag 1")
		rootCmd.Flags().StringVar(&opts.Flag2, "flag2", "value2", "Flag 2")
		rootCmd.Flags().StringVar(&opts.Flag3, "flag3", "value3", "Flag 3")
		rootCmd.Flags().StringVar(&opts.Flag4, "flag4", "value4", "Flag 4")
		rootCmd.Flags().StringVar(&opts.Flag5, "flag5", "value5", "Flag 5")
		rootCmd.Flags().IntVarP(&opts.Port, "port", "p", 8080, "Port")
		rootCmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Verbose")
		rootCmd.Flags().BoolVar(&opts.Debug, "debug", false, "Debug")
		rootCmd.Flags().BoolVar(&opts.Quiet, "quiet", false, "Quiet")
		rootCmd.Flags().BoolVar(&opts.Force, "force", false, "Force")
		rootCmd.SetArgs(args)
		_ = rootCmd.Execute()
	}
}

func BenchmarkManyFlags_Urfave(b *testing.B) {
	args := []string{
		"bench",
		"-flag1", "test1",
		"-flag2", "test2",
		"-flag3", "test3",
		"-port", "9000",
		"-verbose",
		"-debug",
	}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		var opts manyOptions
		app := &cli.App{
			Name: "bench",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "flag1", Value: "value1", Destination: &opts.Flag1},
				&cli.StringFlag{Name: "flag2", Value: "value2", Destination: &opts.Flag2},
				&cli.StringFlag{Name: "flag3", Value: "value3", Destination: &opts.Flag3},
				&cli.StringFlag{Name: "flag4", Value: "value4", Destination: &opts.Flag4},
				&cli.StringFlag{Name: "flag5", Value: "value5", Destination: &opts.Flag5},
				&cli.IntFlag{Name: "port", Value: 8080, Destination: &opts.Port},
				&cli.BoolFlag{Name: "verbose", Destination: &opts.Verbose},
				&cli.BoolFlag{Name: "debug", Destination: &opts.Debug},
				&cli.BoolFlag{Name: "quiet", Destination: &opts.Quiet},
				&cli.BoolFlag{Name: "force", Destination: &opts.Force},
			},
			Action: func(_ *cli.Context) error { return nil },
		}
		_ = app.Run(args)
	}
}

type listOptions struct {
	Files []string
}

func BenchmarkStringSlice_GoSnapArgs(b *testing.B) {
	model := snap.NewModel().Delimiters('-').Arg("files").OneOrMore().Back().MustBuild()
	parser, err := snap.NewParser(model, snap.WithProgramPath(""))
	if err != nil {
		b.Fatal(err)
	}

	args := []string{"-files", "a.txt", "b.txt", "c.txt", "d.txt", "e.txt"}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		r, err := parser.Parse(args)
		if err != nil {
			b.Fatal(err)
		}
		if _, err := snap.Bind[listOptions](r); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkStringSlice_Cobra(b *testing.B) {
	args := []string{"--files", "a.txt", "--files", "b.txt", "--files", "c.txt", "--files", "d.txt", "--files", "e.txt"}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		var opts listOptions
		rootCmd := &cobra.Command{
			Use: "bench",
			Run: func(_ *cobra.Command, _ []string) {},
		}
		rootCmd.Flags().StringArrayVar(&opts.Files, "files", nil, "Files")
		rootCmd.SetArgs(args)
		_ = rootCmd.Execute()
	}
}

func BenchmarkStringSlice_Urfave(b *testing.B) {
	args := []string{"bench", "-files", "a.txt", "-files", "b.txt", "-files", "c.txt", "-files", "d.txt", "-files", "e.txt"}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		app := &cli.App{
			Name: "bench",
			Flags: []cli.Flag{
				&cli.StringSliceFlag{Name: "files"},
			},
			Action: func(c *cli.Context) error {
				_ = c.StringSlice("files")
				return nil
			},
		}
		_ = app.Run(args)
	}
}
