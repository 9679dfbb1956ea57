package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/cotador/internal/cli/formatter"
	"github.com/alexanderramin/cotador/internal/domain"
)

const (
	cmdSkip     = "/skip"
	cmdEnd      = "/end"
	cmdFollowUp = "/followup"
)

func newQuoteCmd(app *App) *cobra.Command {
	var resume, todayFlag string

	cmd := &cobra.Command{
		Use:   "quote [TEXT]",
		Short: "Quote a request with the registered suppliers",
		Long: `Classify the request, ask each matching supplier for an offer and
build the budget message for the customer.

On a terminal the request is asked in a form and supplier replies are
entered in a chat screen. Otherwise replies are read from stdin, one per
line; "/skip" passes the supplier over, "/followup REPLY" asks one more
question before judging and "/end" closes the round.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			today, err := app.today(todayFlag)
			if err != nil {
				return err
			}
			text := joinArgs(args)
			if resume != "" && text != "" {
				return errors.New("--resume does not take a request text")
			}

			if app.interactive() {
				return runInteractiveQuote(ctx, app, cmd.OutOrStdout(), text, resume, today)
			}

			in := bufio.NewScanner(cmd.InOrStdin())
			if resume == "" && text == "" {
				text = firstLine(in)
			}
			s, err := startSession(ctx, app, text, resume, today)
			if err != nil {
				return err
			}
			return runScriptedQuote(ctx, app, in, cmd.OutOrStdout(), s)
		},
	}

	cmd.Flags().StringVar(&resume, "resume", "", "Continue a saved run by its id")
	cmd.Flags().StringVar(&todayFlag, "today", "", "Reference date for relative dates (YYYY-MM-DD)")

	return cmd
}

func startSession(ctx context.Context, app *App, text, resume string, today time.Time) (*domain.Session, error) {
	if resume != "" {
		return app.Negotiation.Resume(ctx, resume)
	}
	return app.Negotiation.Begin(ctx, text, today)
}

func runInteractiveQuote(ctx context.Context, app *App, out io.Writer, text, resume string, today time.Time) error {
	state := &SharedState{App: app, Ctx: ctx, Today: today}
	if text != "" || resume != "" {
		s, err := startSession(ctx, app, text, resume, today)
		if err != nil {
			return err
		}
		state.Session = s
	}

	p := tea.NewProgram(newAppModel(state), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("running quote screen: %w", err)
	}
	if m, ok := final.(appModel); ok && m.state.Quote != nil {
		fmt.Fprintln(out, m.state.Quote.Message)
	}
	return nil
}

// runScriptedQuote drives the negotiation from line-oriented input. Input
// running out ends the round as "/end" would.
func runScriptedQuote(ctx context.Context, app *App, in *bufio.Scanner, out io.Writer, s *domain.Session) error {
	fmt.Fprintf(out, "run %s\n", s.RunID)
	fmt.Fprintf(out, "task: %s\n", formatter.FormatTaskCard(s.Task))

	shown := ""
loop:
	for {
		sup, err := app.Negotiation.Current(ctx, s)
		if err != nil {
			return err
		}
		if sup == nil {
			break
		}
		name := sup.DisplayName()
		if sup.ID != shown {
			shown = sup.ID
			fmt.Fprintf(out, "\n%s\n", formatter.FormatSupplierHeading(*sup))
			for _, e := range s.Transcript {
				fmt.Fprintln(out, formatter.FormatExchange(e, name))
			}
		}

		if !in.Scan() {
			if err := in.Err(); err != nil {
				return fmt.Errorf("reading replies: %w", err)
			}
			if err := app.Negotiation.End(ctx, s); err != nil {
				return err
			}
			break
		}
		line := strings.TrimSpace(in.Text())

		switch {
		case line == "":
			continue
		case line == cmdEnd:
			if err := app.Negotiation.End(ctx, s); err != nil {
				return err
			}
			break loop
		case line == cmdSkip:
			if err := app.Negotiation.Skip(ctx, s); err != nil {
				return err
			}
			fmt.Fprintln(out, formatter.FormatSkipped(*sup))
		case strings.HasPrefix(line, cmdFollowUp):
			answer := strings.TrimSpace(strings.TrimPrefix(line, cmdFollowUp))
			printReply(out, name, answer)
			res, err := app.Negotiation.FollowUp(ctx, s, answer)
			if err != nil {
				return err
			}
			if res.Asked {
				fmt.Fprintln(out, formatter.FormatExchange(domain.Exchange{Speaker: domain.SpeakerAttendant, Text: res.Question}, name))
			} else if res.Interpretation != nil {
				fmt.Fprintln(out, formatter.FormatInterpretation(*res.Interpretation))
			}
		default:
			printReply(out, name, line)
			res, err := app.Negotiation.Submit(ctx, s, line)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, formatter.FormatInterpretation(res))
		}
	}

	q, err := app.Negotiation.Budget(ctx, s)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%s\n", q.Message)
	return nil
}

func printReply(out io.Writer, name, answer string) {
	if answer == "" {
		return
	}
	fmt.Fprintln(out, formatter.FormatExchange(domain.Exchange{Speaker: domain.SpeakerSupplier, Text: answer}, name))
}

func firstLine(in *bufio.Scanner) string {
	for in.Scan() {
		if line := strings.TrimSpace(in.Text()); line != "" {
			return line
		}
	}
	return ""
}
