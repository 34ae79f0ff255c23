package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/todokeeper/internal/client/config"
)

// Run executes the CLI with args and releases the connection afterwards.
func Run(ctx context.Context, args []string, dial Dialer, in io.Reader, out io.Writer) error {
	a := &App{dial: dial, reader: bufio.NewReader(in), out: out}
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(out)

	err := root.ExecuteContext(ctx)
	return errors.Join(err, a.close())
}

func (a *App) rootCommand() *cobra.Command {
	var (
		configPath string
		server     string
		tokenFile  string
		timeout    time.Duration
	)

	root := &cobra.Command{
		Use:           "todokeeper",
		Short:         "Manage your todo list on a todokeeper server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("server") {
				cfg.ServerEndpointAddr = server
			}
			if cmd.Flags().Changed("token-file") {
				cfg.TokenFile = tokenFile
			}
			if cmd.Flags().Changed("timeout") {
				cfg.Timeout = timeout
			}
			a.config = cfg
			return a.connect()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "path to a JSON config file")
	pf.StringVarP(&server, "server", "a", "", "host:port of the todokeeper gRPC endpoint")
	pf.StringVar(&tokenFile, "token-file", "", "where the access token is stored")
	pf.DurationVar(&timeout, "timeout", 0, "deadline for each server call")

	root.AddCommand(
		a.registerCommand(),
		a.loginCommand(),
		a.logoutCommand(),
		a.whoamiCommand(),
		a.pingCommand(),
		a.listCommand(),
		a.addCommand(),
		a.doneCommand(),
		a.deleteCommand(),
		a.shellCommand(),
	)
	return root
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid todo id %q", s)
	}
	return id, nil
}

func (a *App) registerCommand() *cobra.Command {
	var opts RegisterOptions
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.Register(cmd.Context(), opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.Username, "username", "u", "", "username")
	f.StringVarP(&opts.Email, "email", "e", "", "email address")
	f.StringVar(&opts.FirstName, "first-name", "", "first name")
	f.StringVar(&opts.LastName, "last-name", "", "last name")
	f.StringVar(&opts.PhoneNumber, "phone", "", "phone number")
	f.StringVar(&opts.Role, "role", "", "role (defaults to user)")
	return cmd
}

func (a *App) loginCommand() *cobra.Command {
	var username string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.Login(cmd.Context(), username)
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "username")
	return cmd
}

func (a *App) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.Logout(cmd.Context())
		},
	}
}

func (a *App) whoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.WhoAmI(cmd.Context())
		},
	}
}

func (a *App) pingCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the server is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.Ping(cmd.Context())
		},
	}
}

func (a *App) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"l", "ls"},
		Short:   "List your todos",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.List(cmd.Context())
		},
	}
}

func (a *App) addCommand() *cobra.Command {
	var (
		title       string
		description string
		priority    int
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a todo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.Add(cmd.Context(), title, description, priority)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&title, "title", "t", "", "title (at least 3 characters)")
	f.StringVarP(&description, "description", "d", "", "description (3 to 2000 characters)")
	f.IntVarP(&priority, "priority", "p", 1, "priority from 1 to 5")
	return cmd
}

func (a *App) doneCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a todo complete",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.Done(cmd.Context(), id)
		},
	}
}

func (a *App) deleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a todo",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.Delete(cmd.Context(), id)
		},
	}
}

func (a *App) shellCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Run commands interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(a.out, "todokeeper shell (type 'help' for commands)")
			runREPL(cmd.Context(), a, a.reader, a.out)
			return nil
		},
	}
}
