package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dmitrijs2005/todokeeper/internal/client/client"
	"github.com/dmitrijs2005/todokeeper/internal/client/config"
	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/rpc"
)

// Dialer opens a client for the configured server.
type Dialer func(cfg *config.Config) (client.Client, error)

// DialGRPC is the production Dialer.
func DialGRPC(cfg *config.Config) (client.Client, error) {
	c, err := client.NewTodoKeeperClient(cfg.ServerEndpointAddr)
	if err != nil {
		return nil, err
	}
	return c, nil
}

type App struct {
	config *config.Config
	client client.Client
	dial   Dialer
	reader *bufio.Reader
	out    io.Writer
}

// connect dials the server and restores a saved token.
func (a *App) connect() error {
	if a.client != nil {
		return nil
	}
	c, err := a.dial(a.config)
	if err != nil {
		return fmt.Errorf("connect %s: %w", a.config.ServerEndpointAddr, err)
	}
	a.client = c

	token, err := a.loadToken()
	if err != nil {
		return fmt.Errorf("read token: %w", err)
	}
	if token != "" {
		c.SetAccessToken(token)
	}
	return nil
}

func (a *App) close() error {
	if a.client == nil {
		return nil
	}
	err := a.client.Close()
	a.client = nil
	return err
}

func (a *App) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, a.config.Timeout)
}

// explain adds a hint for the errors a user can act on.
func explain(err error) error {
	switch {
	case errors.Is(err, client.ErrUnauthorized):
		return fmt.Errorf("%w (run \"todokeeper login\")", err)
	case errors.Is(err, client.ErrUnavailable):
		return fmt.Errorf("%w (is the server running?)", err)
	default:
		return err
	}
}

// RegisterOptions are the profile fields of a new account.
type RegisterOptions struct {
	Username    string
	Email       string
	FirstName   string
	LastName    string
	PhoneNumber string
	Role        string
}

func (a *App) Register(ctx context.Context, opts RegisterOptions) error {
	var err error
	if opts.Username == "" {
		if opts.Username, err = getSimpleText(a.reader, "Enter username", a.out); err != nil {
			return err
		}
	}
	if opts.Email == "" {
		if opts.Email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
			return err
		}
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	resp, err := a.client.Register(ctx, &rpc.RegisterRequest{
		Username:    opts.Username,
		Email:       opts.Email,
		FirstName:   opts.FirstName,
		LastName:    opts.LastName,
		Password:    string(password),
		Role:        opts.Role,
		PhoneNumber: opts.PhoneNumber,
	})
	if err != nil {
		return explain(err)
	}

	fmt.Fprintf(a.out, "Registered %s (id=%d)\n", resp.Username, resp.ID)
	return nil
}

func (a *App) Login(ctx context.Context, username string) error {
	var err error
	if username == "" {
		if username, err = getSimpleText(a.reader, "Enter username", a.out); err != nil {
			return err
		}
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	token, err := a.client.Login(ctx, username, string(password))
	if err != nil {
		return explain(err)
	}
	if err := a.saveToken(token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}

	fmt.Fprintln(a.out, "Login successful")
	return nil
}

func (a *App) Logout(_ context.Context) error {
	if err := a.clearToken(); err != nil {
		return err
	}
	a.client.SetAccessToken("")
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	me, err := a.client.WhoAmI(ctx)
	if err != nil {
		return explain(err)
	}
	fmt.Fprintf(a.out, "%s (id=%d, role=%s)\n", me.Username, me.ID, me.Role)
	return nil
}

func (a *App) Ping(ctx context.Context) error {
	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	if err := a.client.Ping(ctx); err != nil {
		return explain(err)
	}
	fmt.Fprintln(a.out, "OK")
	return nil
}

func (a *App) List(ctx context.Context) error {
	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	todos, err := a.client.ListTodos(ctx)
	if err != nil {
		return explain(err)
	}
	if len(todos) == 0 {
		fmt.Fprintln(a.out, "No todos")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDONE\tPRIORITY\tTITLE")
	for _, t := range todos {
		done := " "
		if t.Complete {
			done = "x"
		}
		fmt.Fprintf(tw, "%d\t[%s]\t%d\t%s\n", t.ID, done, t.Priority, t.Title)
	}
	return tw.Flush()
}

func (a *App) Add(ctx context.Context, title, description string, priority int) error {
	var err error
	if title == "" {
		if title, err = getSimpleText(a.reader, "Enter title", a.out); err != nil {
			return err
		}
	}
	if description == "" {
		if description, err = getMultiline(a.reader, "Enter description", a.out); err != nil {
			return err
		}
	}

	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	t, err := a.client.CreateTodo(ctx, &rpc.CreateTodoRequest{
		Title:       title,
		Description: description,
		Priority:    priority,
	})
	if err != nil {
		return explain(err)
	}
	fmt.Fprintf(a.out, "Added todo %d\n", t.ID)
	return nil
}

// Done marks a todo complete, keeping its other fields.
func (a *App) Done(ctx context.Context, id int64) error {
	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	t, err := a.client.GetTodo(ctx, id)
	if err != nil {
		return explain(err)
	}
	err = a.client.UpdateTodo(ctx, &rpc.UpdateTodoRequest{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		Complete:    true,
	})
	if err != nil {
		return explain(err)
	}
	fmt.Fprintf(a.out, "Completed todo %d\n", id)
	return nil
}

func (a *App) Delete(ctx context.Context, id int64) error {
	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	if err := a.client.DeleteTodo(ctx, id); err != nil {
		return explain(err)
	}
	fmt.Fprintf(a.out, "Deleted todo %d\n", id)
	return nil
}
