package cmd

import (
	"context"

	"github.com/ardnew/sitenav/nav"
)

// Fmt prints the menu structure of a site root in a readable format.
type Fmt struct {
	JSON JSON `cmd:"" default:"withargs" help:"Format as indented JSON (default)."`
	YAML YAML `cmd:""                    help:"Format as YAML."`
}

// JSON prints the menu structure as plain JSON.
type JSON struct {
	Indent int `default:"2" help:"Indent width for JSON output (0 for compact)" short:"i"`

	Root string `arg:"" help:"Site root directory." name:"root"`
}

// Run executes the json command.
func (j *JSON) Run(ctx context.Context) error {
	nt, err := buildTree(ctx, j.Root)
	if err != nil {
		return ErrBuild.Wrap(err)
	}

	if err := nav.FormatJSON(ctx, stdout(ctx), nt.Items, j.Indent); err != nil {
		return ErrJSONMarshal.Wrap(err)
	}

	return nil
}

// YAML prints the menu structure as YAML.
type YAML struct {
	Indent int `default:"2" help:"Indent width for YAML output (0 for flow style)" short:"i"`

	Root string `arg:"" help:"Site root directory." name:"root"`
}

// Run executes the yaml command.
func (y *YAML) Run(ctx context.Context) error {
	nt, err := buildTree(ctx, y.Root)
	if err != nil {
		return ErrBuild.Wrap(err)
	}

	if err := nav.FormatYAML(ctx, stdout(ctx), nt.Items, y.Indent); err != nil {
		return ErrYAMLMarshal.Wrap(err)
	}

	return nil
}
