package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/geocoder89/taskhub/internal/domain/task"
)

func (a *App) List(ctx context.Context) error {
	if err := a.dash.Refresh(ctx); err != nil {
		a.report(err)
		return err
	}
	printTasks(a.out, a.dash.Tasks)
	return nil
}

// Search sets the title filter; with no argument it clears it.
func (a *App) Search(ctx context.Context, args []string) error {
	if err := a.dash.SetSearch(ctx, strings.Join(args, " ")); err != nil {
		a.report(err)
		return err
	}
	printTasks(a.out, a.dash.Tasks)
	return nil
}

func (a *App) Filter(ctx context.Context, args []string) error {
	status := ""
	if len(args) > 0 {
		status = args[0]
	}
	if status != "" && !strings.EqualFold(status, "all") {
		if _, err := task.ParseStatus(status); err != nil {
			fmt.Fprintln(a.out, "Usage: filter <pending|in-progress|done|all>")
			return err
		}
	}

	if err := a.dash.SetStatus(ctx, status); err != nil {
		a.report(err)
		return err
	}
	printTasks(a.out, a.dash.Tasks)
	return nil
}

func (a *App) Add(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}

	desc, err := getSimpleText(a.reader, "Description (optional)", a.out)
	if err != nil {
		return err
	}

	status, err := getSimpleText(a.reader, "Status [pending]", a.out)
	if err != nil {
		return err
	}

	created, err := a.dash.Add(ctx, task.CreateTaskRequest{Title: title, Description: desc, Status: status})
	if err != nil {
		a.report(err)
		return err
	}

	fmt.Fprintf(a.out, "Added %s %q\n", shortID(created.ID), created.Title)
	return nil
}

// Edit prompts for each field showing the current value; an empty answer
// keeps it.
func (a *App) Edit(ctx context.Context, args []string) error {
	current, err := a.resolve(ctx, args)
	if err != nil {
		return err
	}

	var req task.UpdateTaskRequest

	title, err := getSimpleText(a.reader, fmt.Sprintf("Title [%s]", current.Title), a.out)
	if err != nil {
		return err
	}
	if title != "" && title != current.Title {
		req.Title = &title
	}

	desc, err := getSimpleText(a.reader, fmt.Sprintf("Description [%s]", current.Description), a.out)
	if err != nil {
		return err
	}
	if desc != "" && desc != current.Description {
		req.Description = &desc
	}

	status, err := getSimpleText(a.reader, fmt.Sprintf("Status [%s]", current.Status), a.out)
	if err != nil {
		return err
	}
	if status != "" && status != string(current.Status) {
		req.Status = &status
	}

	if req.Title == nil && req.Description == nil && req.Status == nil {
		fmt.Fprintln(a.out, "Nothing changed.")
		return nil
	}

	updated, err := a.dash.Edit(ctx, current.ID, req)
	if err != nil {
		a.report(err)
		return err
	}

	printTask(a.out, updated)
	return nil
}

// SetStatus handles "status <id> <status>".
func (a *App) SetStatus(ctx context.Context, args []string) error {
	if len(args) < 2 {
		fmt.Fprintln(a.out, "Usage: status <id> <pending|in-progress|done>")
		return errUsage
	}

	current, err := a.resolve(ctx, args[:1])
	if err != nil {
		return err
	}

	status := args[1]
	updated, err := a.dash.Edit(ctx, current.ID, task.UpdateTaskRequest{Status: &status})
	if err != nil {
		a.report(err)
		return err
	}

	fmt.Fprintf(a.out, "%s is now %s\n", shortID(updated.ID), updated.Status)
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	current, err := a.resolve(ctx, args)
	if err != nil {
		return err
	}

	answer, err := getSimpleText(a.reader, fmt.Sprintf("Delete %q? (y/N)", current.Title), a.out)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}

	if err := a.dash.Remove(ctx, current.ID); err != nil {
		a.report(err)
		return err
	}

	fmt.Fprintln(a.out, "Task deleted.")
	return nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	current, err := a.resolve(ctx, args)
	if err != nil {
		return err
	}

	t, err := a.api.GetTask(ctx, current.ID)
	if err != nil {
		a.report(err)
		return err
	}

	printTask(a.out, t)
	return nil
}

// resolve maps an id or unique id prefix from the loaded list to a task.
// Unknown references fall through to the server as full ids.
func (a *App) resolve(ctx context.Context, args []string) (task.Task, error) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: <command> <id>")
		return task.Task{}, errUsage
	}

	if t, ok := a.dash.Find(args[0]); ok {
		return t, nil
	}

	t, err := a.api.GetTask(ctx, args[0])
	if err != nil {
		a.report(err)
		return task.Task{}, err
	}
	return t, nil
}
