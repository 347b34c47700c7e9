package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/geocoder89/taskhub/internal/client"
)

// getSimpleText and getPassword are indirections swapped out in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

type App struct {
	api     *client.Client
	dash    *client.Dashboard
	profile *client.ProfileView
	email   string

	reader *bufio.Reader
	out    io.Writer
}

func NewApp(serverURL string) *App {
	return newApp(client.New(serverURL, &http.Client{Timeout: 10 * time.Second}), os.Stdin, os.Stdout)
}

func newApp(c *client.Client, in io.Reader, out io.Writer) *App {
	return &App{
		api:     c,
		dash:    client.NewDashboard(c),
		profile: client.NewProfileView(c),
		reader:  bufio.NewReader(in),
		out:     out,
	}
}

// Run blocks until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "TaskHub CLI (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.reader, a.out)
}

func (a *App) isLoggedIn() bool {
	return a.api.LoggedIn()
}

func (a *App) status() string {
	if !a.isLoggedIn() {
		return "[logged out]"
	}
	if a.dash.Status != "" || a.dash.Search != "" {
		return fmt.Sprintf("[%s | status=%s search=%q]", a.email, orAll(a.dash.Status), a.dash.Search)
	}
	return "[" + a.email + "]"
}

// report prints err's user-facing message. A rejected token ends the
// session so the next prompt shows the auth screen.
func (a *App) report(err error) {
	if client.IsUnauthorized(err) && !a.isLoggedIn() && a.email != "" {
		a.reset()
		fmt.Fprintln(a.out, "Your session has ended. Please log in again.")
		return
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		fmt.Fprintln(a.out, "Error:", apiErr.Message)
		return
	}
	if errors.Is(err, client.ErrNotLoggedIn) {
		fmt.Fprintln(a.out, "Please log in first.")
		return
	}
	fmt.Fprintln(a.out, "Error: could not reach the server:", err)
}

func (a *App) reset() {
	a.api.Logout()
	a.email = ""
	a.dash = client.NewDashboard(a.api)
	a.profile = client.NewProfileView(a.api)
}

func orAll(s string) string {
	if s == "" {
		return "all"
	}
	return s
}
