// Command verweislint validates cross-reference integrity across the XML
// documents of a scholarly letter edition and reports every dangling or
// malformed reference with its file and line.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/briefedition/verweislint/core/check"
	"github.com/briefedition/verweislint/internal/logging"
	"github.com/briefedition/verweislint/internal/project"
	"github.com/briefedition/verweislint/internal/report"
	"github.com/briefedition/verweislint/internal/xmlfmt"
)

const version = "0.2.0"

// CLI defines the command-line interface for verweislint.
var CLI struct {
	Verbose bool `short:"v" help:"Enable debug logging"`

	Check   CheckCmd     `cmd:"" help:"Validate cross-references across the six edition documents"`
	Project ProjectGroup `cmd:"" help:"Operations driven by a project manifest"`
	Fmt     FmtCmd       `cmd:"" help:"Rewrite whitespace in an edition file"`
	Version VersionCmd   `cmd:"" help:"Print version information"`
}

// ProjectGroup contains manifest-driven operations.
type ProjectGroup struct {
	Check ProjectCheckCmd `cmd:"" help:"Validate the documents named in a manifest"`
}

// CheckCmd validates the edition documents given as positional arguments.
type CheckCmd struct {
	Meta        string `arg:"" help:"Letter metadata document" type:"existingfile"`
	References  string `arg:"" help:"Person/location/hand/apparatus definitions" type:"existingfile"`
	Briefe      string `arg:"" help:"Letter transcription document" type:"existingfile"`
	Edits       string `arg:"" help:"Edit-reason definitions" type:"existingfile"`
	Traditions  string `arg:"" help:"Textual-tradition document" type:"existingfile"`
	Marginalien string `arg:"" help:"Marginal-notes document" type:"existingfile"`

	Register []string    `help:"Register documents with kommentar/subsection entries" type:"existingfile"`
	Output   report.Mode `help:"Report rendering" enum:"annotations,table" default:"annotations"`
}

func (c *CheckCmd) Run() error {
	return runChecks(check.Inputs{
		Meta:        c.Meta,
		References:  c.References,
		Briefe:      c.Briefe,
		Edits:       c.Edits,
		Traditions:  c.Traditions,
		Marginalien: c.Marginalien,
		Registers:   c.Register,
	}, c.Output)
}

// ProjectCheckCmd validates the documents listed in a TOML manifest.
type ProjectCheckCmd struct {
	Manifest string      `arg:"" default:"edition.toml" help:"Project manifest" type:"existingfile"`
	Output   report.Mode `help:"Report rendering" enum:"annotations,table" default:"annotations"`
}

func (c *ProjectCheckCmd) Run() error {
	manifest, err := project.Load(c.Manifest)
	if err != nil {
		return err
	}
	return runChecks(manifest.Inputs(), c.Output)
}

func runChecks(in check.Inputs, mode report.Mode) error {
	violations, err := check.Run(in)
	if err != nil {
		return err
	}

	report.Write(os.Stdout, mode, violations)

	if len(violations) > 0 {
		return fmt.Errorf("%d reference error(s) found", len(violations))
	}
	return nil
}

// FmtCmd rewrites whitespace in one edition file in place.
type FmtCmd struct {
	Type string `arg:"" enum:"briefe,meta,references" help:"File profile: briefe, meta, or references"`
	Path string `arg:"" help:"File to rewrite" type:"existingfile"`
}

func (c *FmtCmd) Run() error {
	if err := xmlfmt.File(c.Path, xmlfmt.Mode(c.Type)); err != nil {
		return err
	}
	slog.Debug("rewrote file", "path", c.Path, "profile", c.Type)
	fmt.Printf("Linted %s\n", c.Path)
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("verweislint %s\n", version)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("verweislint"),
		kong.Description("Cross-reference validator for the letter edition XML files"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	logging.Init(CLI.Verbose)
	err := ctx.Run(ctx)
	ctx.FatalIfErrorf(err)
}
