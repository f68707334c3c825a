package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"dynalist/internal/api"
	"dynalist/internal/config"
	"dynalist/internal/errors"
	"dynalist/internal/item"
	"dynalist/internal/mcp"
	"dynalist/internal/ops"
)

// appEnv holds the process-level dependencies of the CLI so tests can
// substitute a fake client and capture output.
type appEnv struct {
	stdout io.Writer
	stderr io.Writer

	// newClient builds the API client once a token is resolved.
	newClient func(token string) api.Client

	// runMCP starts the MCP server on stdio.
	runMCP func(client api.Client, dir, version string) error
}

func defaultEnv() *appEnv {
	return &appEnv{
		stdout:    os.Stdout,
		stderr:    os.Stderr,
		newClient: func(token string) api.Client { return api.New(token) },
		runMCP:    mcp.Run,
	}
}

// client resolves the API token and builds a client. The token comes from
// the --token flag, the project settings, the DYNALIST_TOKEN environment
// variable, or a .dynalistrc file.
func (e *appEnv) client(c *cli.Context) (api.Client, error) {
	token, err := config.ResolveToken(c.String("token"), c.String("dir"))
	if err != nil {
		return nil, err
	}
	return e.newClient(token), nil
}

// newCLIApp creates the CLI application with all commands.
func newCLIApp(env *appEnv) *cli.App {
	app := &cli.App{
		Name:      "dynalist",
		Usage:     "Mirror Dynalist documents as local OPML files",
		Version:   Version,
		Writer:    env.stdout,
		ErrWriter: env.stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "token", Aliases: []string{"T"}, Usage: "Dynalist API token"},
			&cli.StringFlag{Name: "dir", Aliases: []string{"C"}, Value: ".", Usage: "Project directory"},
		},
		Commands: []*cli.Command{
			listCmd(env),
			treeCmd(env),
			findCmd(env),
			exportCmd(env),
			pullCmd(env),
			statusCmd(env),
			initCmd(env),
			changesCmd(env),
			updateCmd(env),
			mcpCmd(env),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// listCmd creates the list command.
func listCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:      "list",
		Usage:     "List documents and folders with their IDs",
		ArgsUsage: "[id]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "no-sort", Aliases: []string{"U"}, Usage: "Keep the remote order instead of sorting by path"},
		},
		Action: func(c *cli.Context) error {
			client, err := env.client(c)
			if err != nil {
				return outputError(err)
			}

			output, err := ops.List(c.Context, client, ops.ListInput{
				RootID: c.Args().First(),
				Sort:   !c.Bool("no-sort"),
			})
			if err != nil {
				return outputError(err)
			}

			renderItems(env.stdout, output.Items)
			return nil
		},
	}
}

// treeCmd creates the tree command.
func treeCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:      "tree",
		Usage:     "Display documents and folders as a tree",
		ArgsUsage: "[id]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "no-sort", Aliases: []string{"U"}, Usage: "Keep the remote order instead of sorting by path"},
		},
		Action: func(c *cli.Context) error {
			client, err := env.client(c)
			if err != nil {
				return outputError(err)
			}

			output, err := ops.Tree(c.Context, client, ops.TreeInput{
				RootID: c.Args().First(),
				Sort:   !c.Bool("no-sort"),
			})
			if err != nil {
				return outputError(err)
			}

			renderTree(env.stdout, output.Root)
			return nil
		},
	}
}

// findCmd creates the find command.
func findCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:      "find",
		Usage:     "Find documents and folders whose name matches a pattern",
		ArgsUsage: "<pattern>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "ignore-case", Aliases: []string{"i"}, Usage: "Match case-insensitively"},
			&cli.BoolFlag{Name: "no-sort", Aliases: []string{"U"}, Usage: "Keep the remote order instead of sorting by path"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewUsage("find requires a pattern"))
			}

			client, err := env.client(c)
			if err != nil {
				return outputError(err)
			}

			output, err := ops.Find(c.Context, client, ops.FindInput{
				Pattern:    c.Args().First(),
				IgnoreCase: c.Bool("ignore-case"),
				Sort:       !c.Bool("no-sort"),
			})
			if err != nil {
				return outputError(err)
			}

			renderItems(env.stdout, output.Items)
			return nil
		},
	}
}

// exportCmd creates the export command.
func exportCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Export a document, or every document under a folder, as OPML",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Destination file or directory; \"-\" writes a document to stdout"},
			&cli.BoolFlag{Name: "with-format", Aliases: []string{"F"}, Usage: "Include checkbox, heading, and color attributes"},
			&cli.BoolFlag{Name: "with-state", Aliases: []string{"S"}, Usage: "Include collapsed state attributes"},
			&cli.BoolFlag{Name: "root-node", Usage: "Wrap the content in a root node named after the document"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewUsage("export requires a document or folder ID"))
			}

			client, err := env.client(c)
			if err != nil {
				return outputError(err)
			}

			_, err = ops.Export(c.Context, client, ops.ExportInput{
				ID:         c.Args().First(),
				Dest:       c.String("out"),
				Out:        env.stdout,
				RootNode:   c.Bool("root-node"),
				WithFormat: c.Bool("with-format"),
				WithState:  c.Bool("with-state"),
			})
			if err != nil {
				return outputError(err)
			}
			return nil
		},
	}
}

// pullCmd creates the pull command.
func pullCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:  "pull",
		Usage: "Fetch every document listed in the project manifest",
		Action: func(c *cli.Context) error {
			client, err := env.client(c)
			if err != nil {
				return outputError(err)
			}

			output, err := ops.Pull(c.Context, client, ops.PullInput{Dir: c.String("dir")})
			if err != nil {
				return outputError(err)
			}

			for _, target := range output.Fetched {
				fmt.Fprintln(env.stdout, target.LocalPath)
			}
			return nil
		},
	}
}

// statusCmd creates the status command.
func statusCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show which manifest targets a pull would overwrite",
		Action: func(c *cli.Context) error {
			output, err := ops.Status(ops.StatusInput{Dir: c.String("dir")})
			if err != nil {
				return outputError(err)
			}

			for _, entry := range output.Entries {
				if entry.Exists {
					fmt.Fprintf(env.stdout, "%s *\n", entry.LocalPath)
				} else {
					fmt.Fprintln(env.stdout, entry.LocalPath)
				}
			}
			return nil
		},
	}
}

// initCmd creates the init command.
func initCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:      "init",
		Usage:     "Create a project settings file bound to a remote folder",
		ArgsUsage: "<folder-id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "dest", Aliases: []string{"d"}, Usage: "Directory that update mirrors into (default: the project directory)"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Init(ops.InitInput{
				Dir:  c.String("dir"),
				Root: c.Args().First(),
				Dest: c.String("dest"),
			})
			if err != nil {
				return outputError(err)
			}

			fmt.Fprintln(env.stdout, output.Path)
			return nil
		},
	}
}

// changesCmd creates the changes command.
func changesCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:  "changes",
		Usage: "Compare the recorded project state against the remote folder",
		Action: func(c *cli.Context) error {
			client, err := env.client(c)
			if err != nil {
				return outputError(err)
			}

			output, err := ops.Changes(c.Context, client, ops.ChangesInput{Dir: c.String("dir")})
			if err != nil {
				return outputError(err)
			}

			renderChanges(env.stdout, output)
			return nil
		},
	}
}

// updateCmd creates the update command.
func updateCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:  "update",
		Usage: "Mirror the project's remote folder and record the new state",
		Action: func(c *cli.Context) error {
			client, err := env.client(c)
			if err != nil {
				return outputError(err)
			}

			output, err := ops.Update(c.Context, client, ops.UpdateInput{Dir: c.String("dir")})
			if err != nil {
				return outputError(err)
			}

			for _, path := range output.Written {
				fmt.Fprintln(env.stdout, path)
			}
			return nil
		},
	}
}

// mcpCmd creates the mcp command.
func mcpCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Run an MCP server exposing the Dynalist tools on stdio",
		Action: func(c *cli.Context) error {
			client, err := env.client(c)
			if err != nil {
				return outputError(err)
			}

			if err := env.runMCP(client, c.String("dir"), Version); err != nil {
				return outputError(err)
			}
			return nil
		},
	}
}

// Rendering helpers

// renderItems prints one item per line as "<path> [<id>]". Folders other
// than the root get a trailing slash.
func renderItems(w io.Writer, items []ops.ItemRef) {
	for _, it := range items {
		if it.Type == item.TypeFolder && it.Path != "/" {
			fmt.Fprintf(w, "%s/ [%s]\n", it.Path, it.ID)
		} else {
			fmt.Fprintf(w, "%s [%s]\n", it.Path, it.ID)
		}
	}
}

// renderTree prints the item hierarchy with box-drawing branches. Folder
// levels indent with a full-width space so the glyph columns line up.
func renderTree(w io.Writer, root *item.Item) {
	name := root.Name()
	if root.Path == "/" {
		name = ""
	}
	if root.IsFolder() {
		fmt.Fprintf(w, "%s/ [%s]\n", name, root.ID)
	} else {
		fmt.Fprintf(w, "%s [%s]\n", name, root.ID)
		return
	}
	for i, child := range root.Children {
		renderSubtree(w, child, "", i == len(root.Children)-1)
	}
}

func renderSubtree(w io.Writer, it *item.Item, indent string, last bool) {
	branch := "├─"
	if last {
		branch = "└─"
	}
	if !it.IsFolder() {
		fmt.Fprintf(w, "%s%s %s [%s]\n", indent, branch, it.Name(), it.ID)
		return
	}
	fmt.Fprintf(w, "%s%s %s/ [%s]\n", indent, branch, it.Name(), it.ID)
	if last {
		indent += "　　"
	} else {
		indent += "│　"
	}
	for i, child := range it.Children {
		renderSubtree(w, child, indent, i == len(it.Children)-1)
	}
}

// renderChanges prints the non-empty drift buckets. A line shows the local
// path, " => remote" when the document moved, and " *" when pulling it would
// replace a different local file.
func renderChanges(w io.Writer, out *ops.ChangesOutput) {
	writeBucket(w, "New (found only on remote)", out.New)
	writeBucket(w, "Deleted (found only on local)", out.Deleted)
	writeBucket(w, "Modified (remote is newer than local)", out.Modified)
	writeBucket(w, "Outdated (local is newer than remote)", out.Outdated)
	writeBucket(w, "No Changes", out.Unchanged)
}

func writeBucket(w io.Writer, heading string, changes []ops.Change) {
	if len(changes) == 0 {
		return
	}
	fmt.Fprintf(w, "%s:\n\n", heading)
	for _, ch := range changes {
		if ch.LocalPath != "" {
			fmt.Fprintf(w, "\t%s", ch.LocalPath)
			if ch.RemotePath != "" && ch.RemotePath != ch.LocalPath {
				fmt.Fprintf(w, " => %s", ch.RemotePath)
			}
		} else {
			fmt.Fprintf(w, "\t%s", ch.RemotePath)
		}
		if ch.Replaces {
			fmt.Fprint(w, " *")
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)
}

// outputError formats an error for the CLI with exit code 1.
func outputError(err error) error {
	if dErr, ok := err.(*errors.Error); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", dErr.Code, dErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}
