package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	bpm "github.com/polytechnice-si/5A-BPM-Demo"
	"github.com/polytechnice-si/5A-BPM-Demo/model/holiday"
)

const (
	roleEmployee = "EMPLOYEE"
	roleManager  = "MANAGER"
)

type line struct {
	text string
	err  error
}

// console drives the runtime from a line oriented terminal session.
type console struct {
	runtime *bpm.Runtime
	in      io.Reader
	out     io.Writer
	lines   <-chan line
}

func newConsole(runtime *bpm.Runtime, in io.Reader, out io.Writer) *console {
	return &console{runtime: runtime, in: in, out: out}
}

// scan feeds input lines to c.lines until input ends or ctx is done.
func (c *console) scan(ctx context.Context) {
	lines := make(chan line)
	c.lines = lines
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case lines <- line{text: strings.TrimSpace(scanner.Text())}:
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			select {
			case lines <- line{err: err}:
			case <-ctx.Done():
			}
		}
	}()
}

// run loops over role prompts until STOP, an answer that is not a role name,
// end of input or ctx is done, then prints the metrics of every instance.
func (c *console) run(ctx context.Context) error {
	scanCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	c.scan(scanCtx)
	for ctx.Err() == nil {
		role, err := c.ask(ctx, "Are you an EMPLOYEE or a MANAGER? (or STOP)")
		if err != nil {
			break
		}
		switch role {
		case roleEmployee:
			err = c.employee(ctx)
		case roleManager:
			err = c.manager(ctx)
		default: // STOP or any other answer
			return c.metrics(ctx)
		}
		if errors.Is(err, io.EOF) || ctx.Err() != nil {
			break
		}
		if err != nil {
			c.printf("Error: %v\n", err)
		}
	}
	return c.metrics(ctx)
}

func (c *console) employee(ctx context.Context) error {
	c.printf("/**\n * Acting as an EMPLOYEE\n **/\n")
	employee, err := c.ask(ctx, "Who are you?")
	if err != nil {
		return err
	}
	answer, err := c.ask(ctx, "How many holidays do you want to request?")
	if err != nil {
		return err
	}
	nrOfHolidays, err := strconv.Atoi(answer)
	if err != nil {
		return fmt.Errorf("invalid number of holidays %q", answer)
	}
	description, err := c.ask(ctx, "Why do you need them?")
	if err != nil {
		return err
	}
	id, err := c.runtime.Start(ctx, holiday.Key, holiday.Variables(employee, nrOfHolidays, description))
	if err != nil {
		return err
	}
	c.printf("Process started, #%s\n", id)
	return nil
}

func (c *console) manager(ctx context.Context) error {
	c.printf("\n\n/**\n * Acting as a team MANAGER\n **/\n")
	tasks, err := c.runtime.TasksForGroup(ctx, holiday.GroupManagers)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		c.printf("Nothing to do!\n")
		return nil
	}
	c.printf("You have %d tasks:\n", len(tasks))
	for i, t := range tasks {
		c.printf("%d) %s #%s\n", i+1, t.Name, t.InstanceID)
	}
	answer, err := c.ask(ctx, "Which task would you like to complete?")
	if err != nil {
		return err
	}
	index, err := strconv.Atoi(answer)
	if err != nil || index < 1 || index > len(tasks) {
		return fmt.Errorf("invalid task number %q", answer)
	}
	selected := tasks[index-1]
	variables, err := c.runtime.Variables(ctx, selected.ID)
	if err != nil {
		return err
	}
	employee, _ := variables.Lookup(holiday.VarEmployee)
	nrOfHolidays, _ := variables.Lookup(holiday.VarNrOfHolidays)
	answer, err = c.ask(ctx, fmt.Sprintf("%s wants %s of holidays. Do you approve this? (y/n)", employee, nrOfHolidays))
	if err != nil {
		return err
	}
	approved := strings.EqualFold(answer, "y")
	return c.runtime.CompleteTask(ctx, selected.ID, map[string]interface{}{holiday.VarApproved: approved})
}

// metrics prints the report even when ctx is already cancelled.
func (c *console) metrics(ctx context.Context) error {
	c.printf("\n\n/**\n * System Metrics\n **/\n\n")
	return c.runtime.PrintReport(context.WithoutCancel(ctx), c.out)
}

// ask prints prompt and returns the next trimmed input line.
func (c *console) ask(ctx context.Context, prompt string) (string, error) {
	c.printf("%s\n", prompt)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l, ok := <-c.lines:
		if !ok {
			return "", io.EOF
		}
		return l.text, l.err
	}
}

func (c *console) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(c.out, format, args...)
}
