package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/useradmin/internal/client/models"
	"github.com/dmitrijs2005/useradmin/internal/client/services"
	"github.com/dmitrijs2005/useradmin/internal/client/view"
)

const lastSeenLayout = "2006-01-02 15:04"

// List refetches the user collection and shows the current page.
func (a *App) List(ctx context.Context) error {
	if _, err := a.directory.List(ctx); err != nil {
		if msg := describe(err); msg != "" {
			a.sayf("Error: %s", msg)
		}
		return err
	}
	a.render()
	return nil
}

// Show renders the current page from the cached listing.
func (a *App) Show(_ context.Context) error {
	a.render()
	return nil
}

func (a *App) Filter(_ context.Context, args []string) error {
	a.view.SetFilter(trimmedArgs(args))
	a.render()
	return nil
}

// Sort with no argument toggles the direction.
func (a *App) Sort(_ context.Context, args []string) error {
	if len(args) == 0 {
		a.view.ToggleSort()
		a.render()
		return nil
	}

	switch d := view.Direction(strings.ToLower(args[0])); d {
	case view.Asc, view.Desc:
		a.view.SetDirection(d)
	default:
		a.say("Usage: sort [asc|desc]")
		return fmt.Errorf("unknown sort direction %q", args[0])
	}
	a.render()
	return nil
}

func (a *App) Rows(_ context.Context, args []string) error {
	n, err := positiveArg(args)
	if err != nil {
		a.say("Usage: rows <n>")
		return err
	}
	a.view.SetRowsPerPage(n)
	a.render()
	return nil
}

func (a *App) Page(_ context.Context, args []string) error {
	if len(args) == 0 {
		a.say("Usage: page <n>|next|prev")
		return errors.New("missing page argument")
	}

	switch args[0] {
	case "next":
		if a.view.Page() >= a.currentPage().TotalPages {
			a.say("Already on the last page")
			return nil
		}
		a.view.SetPage(a.view.Page() + 1)
	case "prev":
		if a.view.Page() <= 1 {
			a.say("Already on the first page")
			return nil
		}
		a.view.SetPage(a.view.Page() - 1)
	default:
		n, err := positiveArg(args)
		if err != nil {
			a.say("Usage: page <n>|next|prev")
			return err
		}
		a.view.SetPage(n)
	}
	a.render()
	return nil
}

// Select adds (or with included=false removes) users to the selection. Each
// argument is a user id or "#n", the n-th row of the page last shown.
func (a *App) Select(_ context.Context, args []string, included bool) error {
	if len(args) == 0 {
		a.say("Usage: select <id|#row>...")
		return errors.New("nothing to select")
	}

	known := make(map[string]struct{})
	users, _ := a.directory.Snapshot()
	for _, u := range users {
		known[u.ID] = struct{}{}
	}

	var bad []string
	for _, arg := range args {
		id, ok := a.resolve(arg, known)
		if !ok {
			bad = append(bad, arg)
			continue
		}
		a.selection.SelectOne(id, included)
	}

	if len(bad) > 0 {
		a.sayf("Unknown user: %s", strings.Join(bad, ", "))
	}
	a.render()
	return nil
}

func (a *App) resolve(arg string, known map[string]struct{}) (string, bool) {
	if rest, ok := strings.CutPrefix(arg, "#"); ok {
		n, err := strconv.Atoi(rest)
		if err != nil || n < 1 || n > len(a.shown.Rows) {
			return "", false
		}
		return a.shown.Rows[n-1].ID, true
	}
	if _, ok := known[arg]; ok {
		return arg, true
	}
	// Removing a stale id is always allowed.
	return arg, a.selection.Has(arg)
}

// SelectAll replaces the selection with the rows of the current page.
func (a *App) SelectAll(_ context.Context) error {
	a.selection.SelectAll(a.currentPage().IDs())
	a.render()
	return nil
}

func (a *App) SelectNone(_ context.Context) error {
	a.selection.SelectNone()
	a.render()
	return nil
}

// SetStatus blocks or unblocks the selected users.
func (a *App) SetStatus(ctx context.Context, status models.Status) error {
	verb := "unblock"
	if status == models.StatusBlocked {
		verb = "block"
	}

	ids := a.selection.IDs()
	if len(ids) == 0 {
		a.sayf("Please select users to %s", verb)
		return nil
	}

	a.busy.Store(true)
	res, err := a.directory.SetStatus(ctx, ids, status)
	a.busy.Store(false)

	return a.finishBulk(err, func() string {
		return fmt.Sprintf("%s %sed successfully", count(res.Updated, "user"), verb)
	})
}

func (a *App) Delete(ctx context.Context) error {
	ids := a.selection.IDs()
	if len(ids) == 0 {
		a.say("Please select users to delete")
		return nil
	}

	a.busy.Store(true)
	res, err := a.directory.Delete(ctx, ids)
	a.busy.Store(false)

	return a.finishBulk(err, func() string {
		return fmt.Sprintf("%s deleted successfully", count(res.Deleted, "user"))
	})
}

// DeleteUnverified does not need a selection.
func (a *App) DeleteUnverified(ctx context.Context) error {
	a.busy.Store(true)
	res, err := a.directory.DeleteUnverified(ctx)
	a.busy.Store(false)

	return a.finishBulk(err, func() string {
		if res.Count == 0 {
			return "No unverified users found"
		}
		return fmt.Sprintf("%s deleted successfully", count(res.Count, "unverified user"))
	})
}

// finishBulk reports the outcome of a mutation. The selection is cleared
// once the server has applied it, even if the follow-up refresh failed.
func (a *App) finishBulk(err error, success func() string) error {
	var refetchErr *services.RefetchError
	if err != nil && !errors.As(err, &refetchErr) {
		if msg := describe(err); msg != "" {
			a.sayf("Error: %s", msg)
		}
		return err
	}

	a.selection.Clear()
	a.say(success())
	if refetchErr != nil {
		if msg := describe(refetchErr.Err); msg != "" {
			a.sayf("Warning: the user list could not be refreshed: %s", msg)
		}
	}
	a.render()
	return err
}

func (a *App) currentPage() view.Page {
	users, _ := a.directory.Snapshot()
	return a.view.Apply(users)
}

// render prints the current page as a table. The header checkbox shows
// [x] when every row on the page is selected, [-] when only some are.
func (a *App) render() {
	users, fresh := a.directory.Snapshot()
	page := a.view.Apply(users)
	a.shown = page

	summary := fmt.Sprintf("Users: page %d of %d, %d total, last seen %s", page.Number, page.TotalPages, page.Total, a.view.Direction())
	if f := a.view.Filter(); f != "" {
		summary += fmt.Sprintf(", filter %q", f)
	}
	if n := a.selection.Len(); n > 0 {
		summary += fmt.Sprintf(", %d selected", n)
	}
	if !fresh {
		summary += " (not refreshed, run 'list')"
	}
	a.say(summary)

	if len(page.Rows) == 0 {
		a.say("No users to show")
		return
	}

	all, some := a.selection.State(page.IDs())
	header := "[ ]"
	switch {
	case all:
		header = "[x]"
	case some:
		header = "[-]"
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t#\tName\tEmail\tLast seen\tStatus\tID\n", header)
	for i, u := range page.Rows {
		mark := "[ ]"
		if a.selection.Has(u.ID) {
			mark = "[x]"
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%s\n", mark, i+1, u.FullName, u.Email, lastSeen(u), u.Status, u.ID)
	}
	_ = tw.Flush()
}

func lastSeen(u models.User) string {
	if u.LastLoginAt == nil {
		return "Never"
	}
	return u.LastLoginAt.In(time.Local).Format(lastSeenLayout)
}

func positiveArg(args []string) (int, error) {
	if len(args) == 0 {
		return 0, errors.New("missing number")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, fmt.Errorf("%d is not positive", n)
	}
	return n, nil
}

func trimmedArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
