package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/posadmin/internal/client/billing"
	"github.com/dmitrijs2005/posadmin/internal/client/client"
	"github.com/dmitrijs2005/posadmin/internal/client/models"
	"github.com/dmitrijs2005/posadmin/internal/client/repositories"
	"github.com/dmitrijs2005/posadmin/internal/logging"
	"golang.org/x/term"
)

// Session is the part of services.SessionManager the CLI uses.
type Session interface {
	Initialize(ctx context.Context)
	Login(ctx context.Context, email, password string) (*models.User, error)
	Register(ctx context.Context, profile models.RegisterProfile) (*models.User, error)
	Logout(ctx context.Context)
	HandleError(ctx context.Context, err error) bool
	Session() models.Session
}

// Collections looks up a repository by resource name.
type Collections interface {
	ByName(name string) (repositories.Collection, bool)
}

// BillBuilder assembles a bill for a sale.
type BillBuilder interface {
	Build(ctx context.Context, saleID models.ID) (*billing.Bill, error)
}

type App struct {
	session Session
	repos   Collections
	bills   BillBuilder
	log     logging.Logger

	reader     *bufio.Reader
	out        io.Writer
	readSecret func(w io.Writer) ([]byte, error)
}

// NewApp builds an App reading commands from in and writing to out. When in
// is a terminal, passwords are read without echo.
func NewApp(session Session, repos Collections, bills BillBuilder, log logging.Logger, in io.Reader, out io.Writer) *App {
	a := &App{
		session: session,
		repos:   repos,
		bills:   bills,
		log:     log,
		reader:  bufio.NewReader(in),
		out:     out,
	}

	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		a.readSecret = getPassword
	} else {
		a.readSecret = func(w io.Writer) ([]byte, error) {
			s, err := getSimpleText(a.reader, "Enter password", w)
			return []byte(s), err
		}
	}
	return a
}

// Run restores any saved session and blocks in the REPL until the user exits
// or input ends.
func (a *App) Run(ctx context.Context) {
	a.session.Initialize(ctx)

	fmt.Fprintln(a.out, "posadmin back office (type 'help' for commands)")
	if u := a.session.Session().User; a.isLoggedIn() && u != nil {
		fmt.Fprintf(a.out, "Welcome back, %s\n", u.DisplayName())
	}

	runREPL(ctx, a, a.status, a.reader, a.out)
}

func (a *App) isLoggedIn() bool {
	return a.session.Session().IsAuthenticated
}

func (a *App) status() string {
	s := a.session.Session()
	if !s.IsAuthenticated || s.User == nil {
		return "(anonymous)"
	}
	return fmt.Sprintf("(%s)", s.User.Email)
}

// report prints err for the user. An Unauthorized error has already ended
// the session by the time it is printed.
func (a *App) report(ctx context.Context, err error) {
	if a.session.HandleError(ctx, err) {
		fmt.Fprintln(a.out, client.MsgUnauthorized)
		fmt.Fprintln(a.out, "Type 'login' to sign in.")
		return
	}
	a.log.Debug(ctx, "command failed", "error", err, "kind", client.KindOf(err).String())
	fmt.Fprintf(a.out, "Error: %s\n", client.Message(err))
}
