package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/macropower/tripchart/pkg/config"
)

// InputEnvVar names the environment variable read when no input argument is
// given.
const InputEnvVar = "TRIPCHART_INPUT"

// InputArgs holds the flags shared by commands that read a trip count file.
type InputArgs struct {
	configPath  *string
	timeColumn  *string
	countColumn *string
}

func NewInputArgs() *InputArgs {
	return &InputArgs{
		configPath:  new(string),
		timeColumn:  new(string),
		countColumn: new(string),
	}
}

func (a *InputArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(a.configPath, "config", "c", "", "Path to a YAML config file")
	cmd.Flags().StringVar(a.timeColumn, "time_column", "", "Header of the bucket start column")
	cmd.Flags().StringVar(a.countColumn, "count_column", "", "Header of the trip count column")

	must(cmd.MarkFlagFilename("config", "yaml", "yml"))
}

func (a *InputArgs) GetConfigPath() string {
	return *a.configPath
}

func (a *InputArgs) GetTimeColumn() string {
	return *a.timeColumn
}

func (a *InputArgs) GetCountColumn() string {
	return *a.countColumn
}

// Config loads the config file, if any, and applies the flags and arguments
// given to cc on top of it. The input path is taken from the first
// positional argument, then [InputEnvVar], then the config file.
func (a *InputArgs) Config(cc *cobra.Command, posArgs []string) (*config.Config, error) {
	c := config.Default()

	if a.GetConfigPath() != "" {
		var err error

		c, err = config.Load(a.GetConfigPath())
		if err != nil {
			return nil, err
		}
	}

	flags := cc.Flags()
	if flags.Changed("time_column") {
		c.Columns.Time = a.GetTimeColumn()
	}

	if flags.Changed("count_column") {
		c.Columns.Count = a.GetCountColumn()
	}

	switch {
	case len(posArgs) > 0:
		c.Input = posArgs[0]
	case os.Getenv(InputEnvVar) != "":
		c.Input = os.Getenv(InputEnvVar)
	}

	if c.Input == "" {
		return nil, fmt.Errorf("%w: no input file, pass one as an argument or set %s",
			ErrInvalidArgument, InputEnvVar)
	}

	return c, nil
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
