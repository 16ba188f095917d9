package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ktpm/catalog/internal/client/client"
	"github.com/ktpm/catalog/internal/client/config"
	"github.com/ktpm/catalog/internal/server/models"
)

// API is the subset of the REST client used by the commands.
type API interface {
	Register(ctx context.Context, username, password, verify string) error
	Login(ctx context.Context, username, password string) (*models.Identity, error)
	Current(ctx context.Context) (*models.Identity, error)
	Logout(ctx context.Context) error
	Products(ctx context.Context) ([]models.Product, error)
}

type App struct {
	config   *config.Config
	api      API
	reader   *bufio.Reader
	out      io.Writer
	identity *models.Identity
}

func NewApp(c *config.Config) (*App, error) {
	api, err := client.NewHTTPClient(c.ServerURL, c.RequestTimeout)
	if err != nil {
		return nil, err
	}
	return &App{config: c, api: api, reader: bufio.NewReader(os.Stdin), out: os.Stdout}, nil
}

// Run drives the REPL until the user exits or stdin is closed.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintf(a.out, "Connected to %s. Type help for commands.\n", a.config.ServerURL)
	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.identity != nil
}

func (a *App) status() string {
	if a.identity == nil {
		return "anonymous"
	}
	return a.identity.UserName
}
