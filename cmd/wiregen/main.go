package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vincent-petithory/wiregen"
)

type options struct {
	out      string
	pkg      string
	features []string
	verbose  bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	o := &options{}
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	cmd := &cobra.Command{
		Use:          "wiregen SCHEMA...",
		Short:        "Generate typed HTTP-RPC bindings from declarative endpoint schemas",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if o.verbose {
				log.SetLevel(logrus.DebugLevel)
			}
			return run(log, o, args)
		},
	}
	cmd.Flags().StringVarP(&o.out, "out", "o", ".", "directory the generated packages are written under")
	cmd.Flags().StringVar(&o.pkg, "pkg", "", "package name override; defaults to a name derived from the schema")
	cmd.Flags().StringSliceVar(&o.features, "features", nil, "feature flags enabling gated schema fields")
	cmd.Flags().BoolVarP(&o.verbose, "verbose", "v", false, "log compilation progress")
	return cmd
}

func run(log *logrus.Logger, o *options, args []string) error {
	tmpl, err := wiregen.NewTemplateBundle()
	if err != nil {
		return err
	}
	c := &wiregen.Compiler{Log: log, Features: o.features}
	for _, path := range args {
		if err := generateFile(log, c, tmpl, o, path); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

func schemaFormat(path string) (wiregen.Format, error) {
	switch ext := filepath.Ext(path); ext {
	case ".json":
		return wiregen.FormatJSON, nil
	case ".yaml", ".yml":
		return wiregen.FormatYAML, nil
	default:
		return 0, fmt.Errorf("unknown schema extension %q", ext)
	}
}

func generateFile(log *logrus.Logger, c *wiregen.Compiler, tmpl *wiregen.TemplateBundle, o *options, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	format, err := schemaFormat(path)
	if err != nil {
		return err
	}
	sf, err := wiregen.ParseSchemaFile(data, format)
	if err != nil {
		return err
	}

	ctx := &wiregen.TemplateContext{
		Prgm: strings.Join(append([]string{filepath.Base(os.Args[0])}, os.Args[1:]...), " "),
	}
	var name, pkgName, tmplName string
	switch {
	case sf.Endpoint != nil:
		e, err := c.Compile(sf.Endpoint)
		if err != nil {
			return err
		}
		ctx.Endpoint = e
		name = e.Metadata.Name
		pkgName = e.PkgName()
		tmplName = wiregen.TemplateEndpoint
	default:
		ct, err := c.CompileContent(sf.Content)
		if err != nil {
			return err
		}
		ctx.Content = ct
		name = strings.ToLower(ct.Name)
		pkgName = name
		tmplName = wiregen.TemplateContent
	}
	if o.pkg != "" {
		pkgName = o.pkg
	}
	ctx.PkgName = pkgName

	dir := filepath.Join(o.out, pkgName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	dest := filepath.Join(dir, name+".gen.go")

	// Skip re-emitting sub-object types the package already declares by
	// hand, excluding the file about to be rewritten.
	if ctx.Content != nil {
		if types, err := wiregen.FindTypes(dir, pkgName, []string{filepath.Base(dest)}); err == nil {
			ctx.ExistingTypes = types
		}
	}

	src, err := tmpl.Generate(tmplName, ctx)
	if err != nil {
		return err
	}
	if err := os.WriteFile(dest, src, 0666); err != nil {
		return err
	}
	log.Infof("wrote %s", dest)
	return nil
}
