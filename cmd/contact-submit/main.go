package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wolfman30/portfolio-contact/internal/contact"
	"github.com/wolfman30/portfolio-contact/internal/contactform"
	"github.com/wolfman30/portfolio-contact/pkg/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("contact-submit", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		baseURL  = fs.String("url", "http://localhost:8080", "site origin hosting /api/contact")
		timeout  = fs.Duration("timeout", 15*time.Second, "request timeout")
		logLevel = fs.String("log-level", "error", "log level")
		fields   contactform.Fields
	)
	fs.StringVar(&fields.Name, "name", "", "your name (required)")
	fs.StringVar(&fields.Company, "company", "", "company")
	fs.StringVar(&fields.Email, "email", "", "reply-to email (required)")
	fs.StringVar(&fields.ProjectType, "project-type", "", "project type (required)")
	fs.StringVar(&fields.Description, "description", "", "project description (required)")
	fs.StringVar(&fields.Timeline, "timeline", "", "timeline")
	fs.StringVar(&fields.Budget, "budget", "", "budget range")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger := logging.NewWithWriter(*logLevel, stderr)
	form := contactform.NewForm(contactform.NewClient(*baseURL, *timeout), contact.DefaultOptions(), logger)

	err := form.Submit(ctx, fields)
	var invalid *contactform.ValidationError
	switch {
	case err == nil:
		fmt.Fprintln(stdout, "Message sent. Thanks for reaching out!")
		return 0
	case errors.As(err, &invalid):
		fmt.Fprintln(stderr, err)
		printOptions(stderr, contact.DefaultOptions())
		return 2
	default:
		fmt.Fprintln(stderr, form.ErrorMessage())
		return 1
	}
}

func printOptions(w io.Writer, opts contact.Options) {
	groups := []struct {
		name    string
		options []contact.Option
	}{
		{"project-type", opts.ProjectTypes},
		{"timeline", opts.Timelines},
		{"budget", opts.Budgets},
	}
	for _, g := range groups {
		fmt.Fprintf(w, "%s values:\n", g.name)
		for _, o := range g.options {
			fmt.Fprintf(w, "  %-16s %s\n", o.Value, o.Label)
		}
	}
}
